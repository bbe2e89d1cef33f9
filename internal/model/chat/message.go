package chat

import "time"

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable turn in the conversation.
type Message struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Sender         Sender    `json:"sender"`
	Category       string    `json:"category,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	IsAudioMessage bool      `json:"isAudioMessage,omitempty"`
}

// FromUser reports whether the user authored the message.
func (m Message) FromUser() bool {
	return m.Sender == SenderUser
}
