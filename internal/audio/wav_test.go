package audio

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeWAVRoundTripHeader(t *testing.T) {
	format := DefaultPCMFormat()
	pcm := Tone(format.SampleRate, 440, 100*time.Millisecond)

	wav, err := EncodeWAV(pcm, format)
	if err != nil {
		t.Fatalf("EncodeWAV err: %v", err)
	}

	if len(wav) != wavHeaderSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", wavHeaderSize+len(pcm), len(wav))
	}
	if !IsWAV(wav) {
		t.Fatal("expected RIFF/WAVE signature")
	}

	info, err := ParseWAV(wav)
	if err != nil {
		t.Fatalf("ParseWAV err: %v", err)
	}
	if info.Format != format {
		t.Fatalf("unexpected format: %+v", info.Format)
	}
	if info.DataSize != len(pcm) {
		t.Fatalf("unexpected data size: %d", info.DataSize)
	}
	if info.Duration != 100*time.Millisecond {
		t.Fatalf("unexpected duration: %s", info.Duration)
	}
}

func TestEncodeWAVRejectsEmpty(t *testing.T) {
	if _, err := EncodeWAV(nil, DefaultPCMFormat()); err == nil {
		t.Fatal("expected error for empty pcm")
	}
}

func TestEncodeWAVRejectsBadFormat(t *testing.T) {
	if _, err := EncodeWAV([]byte{1, 2}, PCMFormat{SampleRate: 16000, Channels: 1, BitDepth: 12}); err == nil {
		t.Fatal("expected error for unsupported bit depth")
	}
}

func TestParseWAVInvalid(t *testing.T) {
	cases := map[string][]byte{
		"short":    []byte("RIFF"),
		"not riff": make([]byte, 64),
	}

	for name, data := range cases {
		if _, err := ParseWAV(data); !errors.Is(err, ErrInvalidWAV) {
			t.Fatalf("%s: expected ErrInvalidWAV, got %v", name, err)
		}
	}
}

func TestToneLength(t *testing.T) {
	pcm := Tone(8000, 440, 250*time.Millisecond)
	if len(pcm) != 2000*2 {
		t.Fatalf("expected 4000 bytes, got %d", len(pcm))
	}
	if Tone(0, 440, time.Second) != nil {
		t.Fatal("expected nil tone for invalid sample rate")
	}
}
