package chat_test

import (
	"errors"
	"sync"
	"testing"

	model "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	chat "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/chat"
)

func TestStoreSeedsWelcome(t *testing.T) {
	store := chat.NewStore("hello")

	msgs := store.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected welcome message, got %d messages", len(msgs))
	}
	if msgs[0].Text != "hello" || msgs[0].Sender != model.SenderBot {
		t.Fatalf("unexpected welcome: %+v", msgs[0])
	}

	if chat.NewStore("").Len() != 0 {
		t.Fatal("empty welcome should start an empty conversation")
	}
}

func TestStoreAppendKeepsOrderAndUniqueIDs(t *testing.T) {
	store := chat.NewStore("")

	first := store.Append("q", model.SenderUser, "")
	second := store.Append("a", model.SenderBot, "health")
	third := store.AppendAudio("voice", model.SenderUser)

	msgs := store.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []model.Message{first, second, third} {
		if msgs[i].ID != want.ID {
			t.Fatalf("message %d out of order", i)
		}
	}
	if first.ID == second.ID || second.ID == third.ID {
		t.Fatal("message ids must be unique")
	}
	if second.Category != "health" || !third.IsAudioMessage {
		t.Fatalf("unexpected fields: %+v %+v", second, third)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}
}

func TestStoreMessagesIsACopy(t *testing.T) {
	store := chat.NewStore("welcome")

	msgs := store.Messages()
	msgs[0].Text = "changed"

	if store.Messages()[0].Text != "welcome" {
		t.Fatal("store must not expose its backing slice")
	}
}

func TestStoreGet(t *testing.T) {
	store := chat.NewStore("")
	msg := store.Append("q", model.SenderUser, "")

	got, err := store.Get(msg.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Text != "q" {
		t.Fatalf("unexpected message: %+v", got)
	}

	if _, err := store.Get("missing"); !errors.Is(err, chat.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestStoreConcurrentAppend(t *testing.T) {
	store := chat.NewStore("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Append("x", model.SenderUser, "")
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, msg := range store.Messages() {
		if seen[msg.ID] {
			t.Fatalf("duplicate id %s", msg.ID)
		}
		seen[msg.ID] = true
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 messages, got %d", len(seen))
	}
}

func TestCatalogFallsBackToDefaultLocale(t *testing.T) {
	if got := chat.NewCatalog("fr").Locale(); got != chat.DefaultLocale {
		t.Fatalf("expected fallback to %s, got %s", chat.DefaultLocale, got)
	}

	en := chat.NewCatalog(" EN ")
	if en.Locale() != "en" {
		t.Fatalf("unexpected locale: %s", en.Locale())
	}
	if en.Text(chat.NoticeTextFailure) == chat.NewCatalog("bn").Text(chat.NoticeTextFailure) {
		t.Fatal("locales should differ")
	}
	if en.Text(chat.NoticeKind("unknown")) != "unknown" {
		t.Fatal("unknown kinds should render as their name")
	}

	for _, locale := range chat.Locales() {
		c := chat.NewCatalog(locale)
		for _, kind := range []chat.NoticeKind{chat.NoticeWelcome, chat.NoticeTextFailure, chat.NoticeVoiceFailure, chat.NoticeMicrophone, chat.NoticeVoicePlaceholder, chat.NoticeDisclaimer} {
			if c.Text(kind) == string(kind) {
				t.Fatalf("locale %s missing %s", locale, kind)
			}
		}
	}
}
