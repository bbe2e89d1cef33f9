package speech

import (
	"fmt"
	"time"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

const (
	FormatPCM = "pcm"
	FormatWAV = "wav"
)

// RecorderStatus mirrors the microphone control's visible state.
type RecorderStatus string

const (
	RecorderIdle       RecorderStatus = "idle"
	RecorderRecording  RecorderStatus = "recording"
	RecorderProcessing RecorderStatus = "processing"
)

// Recording is the merged result of one capture session.
type Recording struct {
	Data       []byte
	Format     string
	SampleRate int
	Channels   int
	BitDepth   int
	Fragments  int
	Duration   time.Duration
}

// Empty reports whether nothing was captured.
func (r Recording) Empty() bool {
	return len(r.Data) == 0
}

// PCMFormat returns the layout of Data when Format is FormatPCM.
func (r Recording) PCMFormat() audio.PCMFormat {
	return audio.PCMFormat{SampleRate: r.SampleRate, Channels: r.Channels, BitDepth: r.BitDepth}
}

// WAV returns the recording as a WAV file. PCM data is wrapped in a
// RIFF header; WAV data is returned unchanged.
func (r Recording) WAV() ([]byte, error) {
	switch r.Format {
	case FormatWAV:
		return r.Data, nil
	case FormatPCM:
		return audio.EncodeWAV(r.Data, r.PCMFormat())
	default:
		return nil, fmt.Errorf("recording format %q cannot be converted to wav", r.Format)
	}
}
