package speech

import "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"

// AudioConfig carries the capture and playback settings.
type AudioConfig struct {
	// PCM layout produced by the capture source
	SampleRate int `json:"sampleRate"`
	Channels   int `json:"channels"`
	BitDepth   int `json:"bitDepth"`

	// CaptureCommand records raw PCM to stdout, e.g. arecord or sox.
	CaptureCommand []string `json:"captureCommand"`
	// CaptureURL switches capture to a WebSocket microphone bridge when set.
	CaptureURL string `json:"captureUrl,omitempty"`
	// PlayerCommand reads an audio file from stdin and plays it.
	PlayerCommand []string `json:"playerCommand"`
}

// PCMFormat returns the capture layout.
func (c AudioConfig) PCMFormat() audio.PCMFormat {
	return audio.PCMFormat{SampleRate: c.SampleRate, Channels: c.Channels, BitDepth: c.BitDepth}
}
