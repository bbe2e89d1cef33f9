package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/analysis/category"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/faq"
)

// UnknownAnswer is returned when neither the model nor the FAQ can help.
const UnknownAnswer = "দুঃখিত, এই প্রশ্নের উত্তর এখনো আমার জানা নেই। অনুগ্রহ করে অন্যভাবে জিজ্ঞেস করুন।"

// Source tells where an answer came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFAQ      Source = "faq"
	SourceFallback Source = "fallback"
)

// Service answers questions with an LLM chain grounded on the FAQ, and
// falls back to keyword matching when the model is absent or unusable.
type Service struct {
	chain    compose.Runnable[map[string]any, *schema.Message]
	store    faq.Store
	classify func(question, answer string) category.Decision
	logger   *zap.SugaredLogger
}

// NewService builds the answer service. chatModel may be nil, in which case
// only the FAQ is consulted.
func NewService(ctx context.Context, chatModel model.BaseChatModel, store faq.Store, logger *zap.SugaredLogger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if store == nil {
		store = faq.NewMemoryStore(faq.Seed())
	}

	svc := &Service{
		store:    store,
		classify: category.Classify,
		logger:   logger,
	}

	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(answerSystemPrompt),
		schema.UserMessage(answerUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile faq answer chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// ModelEnabled reports whether an LLM chain is wired.
func (s *Service) ModelEnabled() bool {
	return s != nil && s.chain != nil
}

// Answer resolves a question. It never fails; model errors degrade to the
// FAQ and then to UnknownAnswer.
func (s *Service) Answer(ctx context.Context, question string) (chat.BotResponse, Source) {
	question = strings.TrimSpace(question)

	if s.ModelEnabled() {
		if resp, ok := s.askModel(ctx, question); ok {
			return resp, SourceModel
		}
	}

	if entry, ok := s.store.Match(question); ok {
		return chat.BotResponse{Answer: entry.Answer, Category: entry.Category}, SourceFAQ
	}

	decision := s.classify(question, "")
	return chat.BotResponse{Answer: UnknownAnswer, Category: string(decision.Category)}, SourceFallback
}

func (s *Service) askModel(ctx context.Context, question string) (chat.BotResponse, bool) {
	input := map[string]any{
		"faq":      formatFAQ(s.store.List()),
		"question": question,
	}

	msg, err := s.chain.Invoke(ctx, input)
	if err != nil {
		s.logger.Warnw("answer chain invoke failed, use fallback", "error", err)
		return chat.BotResponse{}, false
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return chat.BotResponse{}, false
	}

	payload, err := parseAnswerOutput(msg.Content)
	if err != nil {
		s.logger.Warnw("answer chain output parse failed, use fallback", "error", err)
		return chat.BotResponse{}, false
	}

	answer := strings.TrimSpace(payload.Answer)
	if answer == "" {
		return chat.BotResponse{}, false
	}

	label, ok := parseCategory(payload.Category)
	if !ok {
		label = s.classify(question, answer).Category
	}

	return chat.BotResponse{Answer: answer, Category: string(label)}, true
}

// parseAnswerOutput extracts the JSON object the model was asked to return.
func parseAnswerOutput(content string) (*answerPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &answerPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func parseCategory(raw string) (category.Label, bool) {
	switch category.Label(strings.ToLower(strings.TrimSpace(raw))) {
	case category.Education:
		return category.Education, true
	case category.Health:
		return category.Health, true
	case category.Technology:
		return category.Technology, true
	case category.Geography:
		return category.Geography, true
	case category.General:
		return category.General, true
	default:
		return "", false
	}
}

func formatFAQ(entries []faq.Entry) string {
	if len(entries) == 0 {
		return "(none)"
	}

	var builder strings.Builder
	for i, entry := range entries {
		builder.WriteString(fmt.Sprintf("Q: %s\nA: %s\nCategory: %s", entry.Question, entry.Answer, entry.Category))
		if i < len(entries)-1 {
			builder.WriteString("\n\n")
		}
	}
	return builder.String()
}

type answerPayload struct {
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

const answerSystemPrompt = "You are a helpful Bangla FAQ assistant for questions about education, health and technology. Always answer in Bangla, briefly and accurately. Use the reference FAQ when it applies.\nReturn only one JSON object with the fields answer (string) and category (one of education/health/technology/geography/general). Do not output any other text.\n\nReference FAQ:\n{faq}"

const answerUserPrompt = "{question}"
