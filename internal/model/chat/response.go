package chat

import "strings"

// BotResponse is the assistant's reply to a text or voice question.
type BotResponse struct {
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	// Question echoes the transcription of a voice query.
	Question string `json:"question,omitempty"`
}

// HasQuestion reports whether the backend returned a usable transcription.
func (r BotResponse) HasQuestion() bool {
	return strings.TrimSpace(r.Question) != ""
}
