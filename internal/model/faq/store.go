package faq

import "strings"

// Store exposes FAQ retrieval for the answer service and handlers.
type Store interface {
	List() []Entry
	FindByID(id string) (Entry, bool)
	Match(question string) (Entry, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Entry
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
func NewMemoryStore(items []Entry) *MemoryStore {
	return &MemoryStore{items: append([]Entry(nil), items...)}
}

// List returns all entries.
func (s *MemoryStore) List() []Entry {
	return append([]Entry(nil), s.items...)
}

// FindByID looks up an entry by identifier.
func (s *MemoryStore) FindByID(id string) (Entry, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Entry{}, false
}

// Match returns the entry sharing the most keywords with question.
func (s *MemoryStore) Match(question string) (Entry, bool) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return Entry{}, false
	}

	var (
		best      Entry
		bestScore int
	)
	for _, item := range s.items {
		score := 0
		for _, keyword := range item.Keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = item, score
		}
	}
	return best, bestScore > 0
}
