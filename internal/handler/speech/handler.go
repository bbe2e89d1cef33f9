package speech

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/metrics"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	faqService "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/faq"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/pkg/utils"
)

const maxUploadSize = 32 << 20

// VoiceUnrecognized is answered when a voice question arrives without a
// transcription; this server has no speech recognizer.
const VoiceUnrecognized = "আপনার ভয়েস বার্তা পেয়েছি, কিন্তু এই সার্ভারে কণ্ঠস্বর শনাক্তকরণ চালু নেই। অনুগ্রহ করে প্রশ্নটি লিখে পাঠান।"

// Answerer resolves a question to a reply.
type Answerer interface {
	Answer(ctx context.Context, question string) (chat.BotResponse, faqService.Source)
}

// Synthesizer renders text as playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Handler serves voice questions and speech synthesis.
type Handler struct {
	answerer Answerer
	synth    Synthesizer
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger
}

// New creates the speech handler. m may be nil.
func New(answerer Answerer, synth Synthesizer, m *metrics.Metrics, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		answerer: answerer,
		synth:    synth,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterRoutes registers the voice and tts routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask_voice", h.handleAskVoice)
	r.Post("/tts", h.handleTTS)
}

// handleAskVoice accepts the multipart field "file". An optional "question"
// field carries a transcription produced elsewhere; it is echoed back so
// the client can show it as the user's turn.
func (h *Handler) handleAskVoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	if len(data) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "audio file is empty")
		return
	}
	if h.metrics != nil {
		h.metrics.RecordVoiceUpload(len(data))
	}

	declared := inferAudioFormat(header.Filename)
	var duration time.Duration
	if audio.IsWAV(data) {
		info, err := audio.ParseWAV(data)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid wav file: "+err.Error())
			return
		}
		duration = info.Duration
	} else if declared == speech.FormatWAV {
		h.logger.Warnw("voice upload labelled wav is not wav", "filename", header.Filename, "bytes", len(data))
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		h.logger.Infow("voice question without transcription", "bytes", len(data), "duration", duration)
		if h.metrics != nil {
			h.metrics.RecordAnswer(string(faqService.SourceFallback), "")
		}
		utils.RespondJSON(w, http.StatusOK, chat.BotResponse{Answer: VoiceUnrecognized})
		return
	}

	resp, source := h.answerer.Answer(r.Context(), question)
	if h.metrics != nil {
		h.metrics.RecordAnswer(string(source), resp.Category)
	}

	utils.RespondJSON(w, http.StatusOK, chat.BotResponse{
		Answer:   resp.Answer,
		Category: resp.Category,
		Question: question,
	})
}

// handleTTS returns {"audio": hex} for {"text": ...}.
func (h *Handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req speech.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	data, err := h.synth.Synthesize(r.Context(), req.Text)
	if err != nil {
		h.logger.Errorw("speech synthesis failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "speech synthesis failed")
		return
	}
	if h.metrics != nil {
		h.metrics.RecordTTSAudio(len(data))
	}

	utils.RespondJSON(w, http.StatusOK, speech.TTSResponse{Audio: hex.EncodeToString(data)})
}

// inferAudioFormat guesses the upload format from its file name.
func inferAudioFormat(filename string) string {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav":
		return speech.FormatWAV
	case ".pcm", ".raw":
		return speech.FormatPCM
	case "":
		return "unknown"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}
