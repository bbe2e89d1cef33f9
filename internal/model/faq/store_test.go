package faq

import "testing"

func TestMemoryStoreMatch(t *testing.T) {
	store := NewMemoryStore(Seed())

	entry, ok := store.Match("What is the capital of Bangladesh?")
	if !ok || entry.ID != "capital" {
		t.Fatalf("expected capital entry, got %+v ok=%v", entry, ok)
	}

	entry, ok = store.Match("আমার জ্বর হয়েছে")
	if !ok || entry.Category != "health" {
		t.Fatalf("expected health entry, got %+v ok=%v", entry, ok)
	}

	if _, ok := store.Match("   "); ok {
		t.Fatal("blank question should not match")
	}
	if _, ok := store.Match("quantum chromodynamics"); ok {
		t.Fatal("unrelated question should not match")
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	store := NewMemoryStore(Seed())
	list := store.List()
	list[0].Answer = "changed"

	got, ok := store.FindByID(list[0].ID)
	if !ok || got.Answer == "changed" {
		t.Fatal("List must return a copy")
	}
	if _, ok := store.FindByID("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
}
