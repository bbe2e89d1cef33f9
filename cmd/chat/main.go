package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/config"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/backend"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/tui"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

const defaultLogFile = "chat.log"

// Terminal chat client for the Bangla FAQ assistant.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// the terminal belongs to the UI, so logs go to a file
	if len(cfg.Logging.OutputPaths) == 0 {
		cfg.Logging.OutputPaths = []string{defaultLogFile}
	}
	if cfg.Logging.ServiceName == "" {
		cfg.Logging.ServiceName = "faq-chat"
	}

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	client := backend.NewDefaultClient(sugar.Named("backend"))

	var source speech.Source
	if cfg.Audio.CaptureURL != "" {
		source = speech.NewWebSocketSource(cfg.Audio.CaptureURL)
		sugar.Infow("capturing audio from websocket", "url", cfg.Audio.CaptureURL)
	} else {
		source = speech.NewCommandSource(cfg.Audio.CaptureCommand)
		sugar.Infow("capturing audio from command", "command", cfg.Audio.CaptureCommand)
	}

	recorder := speech.NewRecorder(source, cfg.Audio.PCMFormat(), sugar.Named("recorder"))

	model := tui.New(tui.Options{
		Assistant:   client,
		Catalog:     chat.NewCatalog(cfg.UI.Locale),
		Recorder:    recorder,
		Synthesizer: client,
		Player:      speech.NewCommandPlayer(cfg.Audio.PlayerCommand),
		Logger:      sugar.Named("tui"),
	})

	sugar.Infow("chat client starting", "backend", backend.BaseURL, "locale", cfg.UI.Locale)

	if err := tui.Run(model, tea.WithAltScreen()); err != nil {
		sugar.Errorw("chat client exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
