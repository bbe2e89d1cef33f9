package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/metrics"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	faqService "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/faq"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

// Answerer resolves a question to a reply.
type Answerer interface {
	Answer(ctx context.Context, question string) (chat.BotResponse, faqService.Source)
}

// Handler serves text questions.
type Handler struct {
	answerer Answerer
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger
}

// New creates the text question handler. m may be nil.
func New(answerer Answerer, m *metrics.Metrics, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		answerer: answerer,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterRoutes registers the text question route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask_text", h.handleAskText)
}

// handleAskText answers POST /ask_text?question=...; the body is ignored.
func (h *Handler) handleAskText(w http.ResponseWriter, r *http.Request) {
	req := chat.TextRequest{Question: strings.TrimSpace(r.URL.Query().Get("question"))}
	if req.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question query parameter is required")
		return
	}

	resp, source := h.answerer.Answer(r.Context(), req.Question)
	if h.metrics != nil {
		h.metrics.RecordAnswer(string(source), resp.Category)
	}

	h.logger.Infow("answered text question", "source", source, "category", resp.Category, "length", len(req.Question))
	utils.RespondJSON(w, http.StatusOK, chat.BotResponse{Answer: resp.Answer, Category: resp.Category})
}
