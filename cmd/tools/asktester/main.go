package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/config"
	speechmodel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/backend"
)

// Exercises the three assistant endpoints from the command line.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "", "test mode: text, voice or tts")
	text := flag.String("text", "", "question for text mode, input for tts mode")
	audioPath := flag.String("audio", "", "voice mode input file (.wav, or raw .pcm in the configured format)")
	outputPath := flag.String("out", "", "tts output file (defaults to tts-output-<unix>.mp3)")
	baseURL := flag.String("url", backend.BaseURL, "assistant service address")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	client := backend.NewClient(*baseURL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *mode {
	case "text":
		runText(ctx, client, *text)
	case "voice":
		runVoice(ctx, client, cfg, *audioPath)
	case "tts":
		runTTS(ctx, client, *text, *outputPath)
	default:
		flag.Usage()
		log.Fatal("choose a mode with -mode=text, -mode=voice or -mode=tts")
	}
}

func runText(ctx context.Context, client *backend.Client, question string) {
	if strings.TrimSpace(question) == "" {
		log.Fatal("text mode needs a question via -text")
	}

	log.Printf("asking: %q", question)

	resp, err := client.AskText(ctx, question)
	if err != nil {
		log.Fatalf("ask_text failed: %v", err)
	}

	log.Printf("answer=%q category=%q", resp.Answer, resp.Category)
}

func runVoice(ctx context.Context, client *backend.Client, cfg *config.Config, audioPath string) {
	if audioPath == "" {
		log.Fatal("voice mode needs an audio file via -audio")
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		log.Fatalf("failed to read audio file: %v", err)
	}

	format := cfg.Audio.PCMFormat()
	rec := speechmodel.Recording{
		Data:       data,
		Format:     speechmodel.FormatPCM,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   format.BitDepth,
		Fragments:  1,
		Duration:   format.Duration(len(data)),
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(audioPath)), ".")
	if ext == "wav" || audio.IsWAV(data) {
		rec.Format = speechmodel.FormatWAV
		if info, err := audio.ParseWAV(data); err == nil {
			rec.Duration = info.Duration
		}
	}

	log.Printf("uploading %s: format=%s bytes=%d duration=%s", audioPath, rec.Format, len(data), rec.Duration)

	resp, err := client.AskVoice(ctx, rec)
	if err != nil {
		log.Fatalf("ask_voice failed: %v", err)
	}

	log.Printf("question=%q answer=%q category=%q", resp.Question, resp.Answer, resp.Category)
}

func runTTS(ctx context.Context, client *backend.Client, text, outputPath string) {
	if strings.TrimSpace(text) == "" {
		log.Fatal("tts mode needs input text via -text")
	}

	if outputPath == "" {
		outputPath = fmt.Sprintf("tts-output-%d.mp3", time.Now().Unix())
	}

	payload, err := client.GetTTS(ctx, text)
	if err != nil {
		log.Fatalf("tts failed: %v", err)
	}

	clip := audio.DecodeHex(payload)
	if clip == nil {
		log.Fatalf("tts returned no decodable audio (%d hex chars)", len(payload))
	}
	defer clip.Release()

	if err := os.WriteFile(outputPath, clip.Bytes(), 0o644); err != nil {
		log.Fatalf("failed to write audio file: %v", err)
	}

	log.Printf("tts ok: wrote %d bytes to %s", clip.Len(), outputPath)
}
