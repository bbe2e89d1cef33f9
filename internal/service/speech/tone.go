package speech

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

// ToneSynthesizer stands in for a real TTS engine on the development
// backend. It renders a WAV beep whose length follows the text length.
type ToneSynthesizer struct {
	Format      audio.PCMFormat
	Frequency   float64
	PerRune     time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
}

// NewToneSynthesizer returns a synthesizer producing 16 kHz mono audio.
func NewToneSynthesizer() *ToneSynthesizer {
	return &ToneSynthesizer{
		Format:      audio.DefaultPCMFormat(),
		Frequency:   440,
		PerRune:     60 * time.Millisecond,
		MinDuration: 300 * time.Millisecond,
		MaxDuration: 10 * time.Second,
	}
}

// Duration reports how long the rendered clip for text lasts.
func (s *ToneSynthesizer) Duration(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(text)) * s.PerRune
	if d < s.MinDuration {
		d = s.MinDuration
	}
	if s.MaxDuration > 0 && d > s.MaxDuration {
		d = s.MaxDuration
	}
	return d
}

// Synthesize renders text as a WAV file.
func (s *ToneSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := s.Format
	if format.Channels != 1 || format.BitDepth != 16 {
		return nil, fmt.Errorf("tone synthesis supports mono PCM16 only, got %d ch %d bit", format.Channels, format.BitDepth)
	}

	pcm := audio.Tone(format.SampleRate, s.Frequency, s.Duration(text))
	return audio.EncodeWAV(pcm, format)
}
