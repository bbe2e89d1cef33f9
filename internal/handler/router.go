package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/handler/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/handler/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/metrics"
	middlewarePkg "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/middleware"
	faqService "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/faq"
	speechService "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

// NewRouter wires the assistant endpoints. The three question/speech routes
// live at the root because clients address them without a prefix.
func NewRouter(faqSvc *faqService.Service, synth *speechService.ToneSynthesizer, m *metrics.Metrics, logger *zap.SugaredLogger) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status": "healthy",
			"model":  faqSvc.ModelEnabled(),
		})
	})

	chat.New(faqSvc, m, logger.Named("chat")).RegisterRoutes(r)
	speech.New(faqSvc, synth, m, logger.Named("speech")).RegisterRoutes(r)

	return r
}
