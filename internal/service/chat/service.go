package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
)

var ErrMessageNotFound = errors.New("message not found")

// Store keeps the conversation in memory. Messages are appended in arrival
// order and never changed or removed.
type Store struct {
	mu       sync.RWMutex
	messages []chat.Message
	index    map[string]int
	now      func() time.Time
}

// NewStore returns a conversation seeded with welcome as the first bot
// message. An empty welcome starts an empty conversation.
func NewStore(welcome string) *Store {
	s := &Store{
		messages: make([]chat.Message, 0, 16),
		index:    make(map[string]int),
		now:      time.Now,
	}
	if welcome != "" {
		s.Append(welcome, chat.SenderBot, "")
	}
	return s
}

// Append adds a message and returns it with its identifier and timestamp.
func (s *Store) Append(text string, sender chat.Sender, category string) chat.Message {
	return s.add(chat.Message{Text: text, Sender: sender, Category: category})
}

// AppendAudio adds a turn that originated from a voice recording.
func (s *Store) AppendAudio(text string, sender chat.Sender) chat.Message {
	return s.add(chat.Message{Text: text, Sender: sender, IsAudioMessage: true})
}

func (s *Store) add(message chat.Message) chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = uuid.NewString()
	message.Timestamp = s.now()

	s.index[message.ID] = len(s.messages)
	s.messages = append(s.messages, message)
	return message
}

// Messages returns a copy of the conversation in arrival order.
func (s *Store) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len reports the number of messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Get retrieves a message by identifier.
func (s *Store) Get(id string) (chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return chat.Message{}, ErrMessageNotFound
	}
	return s.messages[i], nil
}
