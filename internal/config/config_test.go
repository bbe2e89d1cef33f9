package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "LOG_FILE", "AUDIO_SAMPLE_RATE", "AUDIO_CAPTURE_COMMAND", "AUDIO_CAPTURE_URL", "CHAT_LOCALE", "ARK_MODEL", "ARK_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "info" || len(cfg.Logging.OutputPaths) != 0 {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 || cfg.Audio.BitDepth != 16 {
		t.Fatalf("unexpected audio format: %+v", cfg.Audio)
	}
	if len(cfg.Audio.CaptureCommand) == 0 || cfg.Audio.CaptureCommand[0] != "arecord" {
		t.Fatalf("unexpected capture command: %v", cfg.Audio.CaptureCommand)
	}
	if cfg.UI.Locale != "bn" {
		t.Fatalf("unexpected locale: %s", cfg.UI.Locale)
	}
	if cfg.AI.Enabled() {
		t.Fatal("AI should be disabled without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_FILE", "/tmp/chat.log")
	t.Setenv("AUDIO_SAMPLE_RATE", "8000")
	t.Setenv("AUDIO_PLAYER_COMMAND", "mpg123 -q -")
	t.Setenv("CHAT_LOCALE", "EN")
	t.Setenv("ARK_MODEL", "doubao")
	t.Setenv("ARK_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if !reflect.DeepEqual(cfg.Logging.OutputPaths, []string{"/tmp/chat.log"}) {
		t.Fatalf("unexpected output paths: %v", cfg.Logging.OutputPaths)
	}
	if cfg.Audio.SampleRate != 8000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Audio.SampleRate)
	}
	if !reflect.DeepEqual(cfg.Audio.PlayerCommand, []string{"mpg123", "-q", "-"}) {
		t.Fatalf("unexpected player command: %v", cfg.Audio.PlayerCommand)
	}
	if cfg.UI.Locale != "en" {
		t.Fatalf("unexpected locale: %s", cfg.UI.Locale)
	}
	if !cfg.AI.Enabled() {
		t.Fatal("AI should be enabled with model and key")
	}
}

func TestDefaultCaptureCommandFollowsFormat(t *testing.T) {
	t.Setenv("AUDIO_CAPTURE_COMMAND", "")
	t.Setenv("AUDIO_SAMPLE_RATE", "44100")
	t.Setenv("AUDIO_CHANNELS", "2")
	t.Setenv("AUDIO_BIT_DEPTH", "24")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	want := []string{"arecord", "-q", "-t", "raw", "-f", "S24_3LE", "-r", "44100", "-c", "2"}
	if !reflect.DeepEqual(cfg.Audio.CaptureCommand, want) {
		t.Fatalf("capture command %v does not match the configured format", cfg.Audio.CaptureCommand)
	}

	t.Setenv("AUDIO_CAPTURE_COMMAND", "sox -d -t raw -")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !reflect.DeepEqual(cfg.Audio.CaptureCommand, []string{"sox", "-d", "-t", "raw", "-"}) {
		t.Fatalf("explicit capture command should be kept, got %v", cfg.Audio.CaptureCommand)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":              "80 80",
		"AUDIO_SAMPLE_RATE": "-1",
		"AUDIO_BIT_DEPTH":   "12",
		"LOG_DEVELOPMENT":   "maybe",
		"ARK_TEMPERATURE":   "hot",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
