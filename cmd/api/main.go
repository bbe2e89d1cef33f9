package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/config"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/handler"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/metrics"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/faq"
	faqService "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/faq"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

// Development assistant service implementing /ask_text, /ask_voice and /tts.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	cfg.Logging.ServiceName = "faq-api"
	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			sugar.Warnw("failed to initialize chat model, answering from the FAQ only", "error", err)
			chatModel = nil
		} else {
			sugar.Infow("chat model initialized", "model", cfg.AI.Model)
		}
	} else {
		sugar.Info("Ark credentials not configured, answering from the FAQ only")
	}

	faqSvc, err := faqService.NewService(ctx, chatModel, faq.NewMemoryStore(faq.Seed()), sugar.Named("faq"))
	if err != nil {
		sugar.Fatalw("failed to initialize faq service", "error", err)
	}

	router := handler.NewRouter(faqSvc, speech.NewToneSynthesizer(), metrics.NewMetrics(), sugar)

	startServer(ctx, cfg.Server, router, sugar)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.SugaredLogger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Infow("Bangla FAQ backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
