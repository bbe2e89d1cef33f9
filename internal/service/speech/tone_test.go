package speech

import (
	"context"
	"testing"
	"time"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

func TestToneSynthesizerScalesWithText(t *testing.T) {
	synth := NewToneSynthesizer()

	short, err := synth.Synthesize(context.Background(), "হ্যাঁ")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	long, err := synth.Synthesize(context.Background(), "বাংলাদেশের রাজধানী ঢাকা। এটি একটি বড় শহর।")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}

	shortInfo, err := audio.ParseWAV(short)
	if err != nil {
		t.Fatalf("short clip is not wav: %v", err)
	}
	longInfo, err := audio.ParseWAV(long)
	if err != nil {
		t.Fatalf("long clip is not wav: %v", err)
	}

	if shortInfo.Duration != 300*time.Millisecond {
		t.Fatalf("short text should use the minimum duration, got %v", shortInfo.Duration)
	}
	if longInfo.Duration <= shortInfo.Duration {
		t.Fatalf("longer text should produce longer audio: %v <= %v", longInfo.Duration, shortInfo.Duration)
	}
}

func TestToneSynthesizerCapsDuration(t *testing.T) {
	synth := NewToneSynthesizer()
	synth.MaxDuration = time.Second

	text := make([]rune, 500)
	for i := range text {
		text[i] = 'ক'
	}
	if got := synth.Duration(string(text)); got != time.Second {
		t.Fatalf("expected capped duration, got %v", got)
	}
}
