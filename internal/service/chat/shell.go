package chat

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
)

var (
	ErrEmptyInput     = errors.New("question is empty")
	ErrBusy           = errors.New("a request is already in progress")
	ErrEmptyRecording = errors.New("recording is empty")
)

// Assistant answers questions. backend.Client satisfies it.
type Assistant interface {
	AskText(ctx context.Context, question string) (*chat.BotResponse, error)
	AskVoice(ctx context.Context, rec speech.Recording) (*chat.BotResponse, error)
}

// Shell runs the text and voice flows against one conversation. At most
// one request is outstanding at a time; extra submissions are rejected.
type Shell struct {
	store     *Store
	assistant Assistant
	catalog   Catalog
	logger    *zap.SugaredLogger
	onAppend  func(chat.Message)

	busy atomic.Bool
}

// ShellOption customizes a Shell.
type ShellOption func(*Shell)

// WithAppendHandler is called after every message the shell appends, from
// the goroutine running the flow.
func WithAppendHandler(fn func(chat.Message)) ShellOption {
	return func(s *Shell) {
		s.onAppend = fn
	}
}

// NewShell wires a shell. A nil store starts a conversation seeded with the
// catalog's welcome message.
func NewShell(store *Store, assistant Assistant, catalog Catalog, logger *zap.SugaredLogger, opts ...ShellOption) *Shell {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if store == nil {
		store = NewStore(catalog.Text(NoticeWelcome))
	}

	s := &Shell{
		store:     store,
		assistant: assistant,
		catalog:   catalog,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the conversation for rendering.
func (s *Shell) Store() *Store {
	return s.store
}

// Catalog returns the locale catalog used for fixed texts.
func (s *Shell) Catalog() Catalog {
	return s.catalog
}

// Busy reports whether a request is outstanding.
func (s *Shell) Busy() bool {
	return s.busy.Load()
}

// Status maps the busy flag to the interaction state.
func (s *Shell) Status() chat.Status {
	if s.Busy() {
		return chat.StatusAwaitingResponse
	}
	return chat.StatusIdle
}

// SubmitText appends the user's question, asks the assistant and appends
// the answer. Surrounding whitespace is trimmed: the stored user turn and
// the question sent are the same trimmed text. Backend failures become a
// localized apology message and are not returned. The returned message is
// the bot turn.
func (s *Shell) SubmitText(ctx context.Context, text string) (chat.Message, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return chat.Message{}, ErrEmptyInput
	}
	if !s.busy.CompareAndSwap(false, true) {
		return chat.Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	s.append(s.store.Append(question, chat.SenderUser, ""))

	resp, err := s.assistant.AskText(ctx, question)
	if err != nil {
		s.logger.Errorw("text question failed", "error", err)
		return s.appendNotice(NoticeTextFailure), nil
	}

	reply := s.store.Append(resp.Answer, chat.SenderBot, resp.Category)
	s.append(reply)
	return reply, nil
}

// SubmitVoice sends a finished recording. The transcribed question, or a
// placeholder when none came back, is appended as the user's turn before
// the answer. On failure only the voice apology is appended.
func (s *Shell) SubmitVoice(ctx context.Context, rec speech.Recording) (chat.Message, error) {
	if rec.Empty() {
		return chat.Message{}, ErrEmptyRecording
	}
	if !s.busy.CompareAndSwap(false, true) {
		return chat.Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	resp, err := s.assistant.AskVoice(ctx, rec)
	if err != nil {
		s.logger.Errorw("voice question failed", "error", err, "bytes", len(rec.Data))
		return s.appendNotice(NoticeVoiceFailure), nil
	}

	question := s.catalog.Text(NoticeVoicePlaceholder)
	if resp.HasQuestion() {
		question = strings.TrimSpace(resp.Question)
	}
	s.append(s.store.AppendAudio(question, chat.SenderUser))

	reply := s.store.Append(resp.Answer, chat.SenderBot, resp.Category)
	s.append(reply)
	return reply, nil
}

func (s *Shell) appendNotice(kind NoticeKind) chat.Message {
	msg := s.store.Append(s.catalog.Text(kind), chat.SenderBot, "")
	s.append(msg)
	return msg
}

func (s *Shell) append(msg chat.Message) {
	if s.onAppend != nil {
		s.onAppend(msg)
	}
}
