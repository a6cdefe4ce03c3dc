package session

import (
	"testing"
	"time"

	"hirepulse/internal/types"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(0, nil)
	defer store.Close()

	created := store.Create("Sam", "pos_003", map[string]string{"source": "test"})
	if created.ID == "" {
		t.Fatal("expected generated session id")
	}
	if created.CandidateName != "Sam" || created.PositionID != "pos_003" {
		t.Errorf("session fields = (%q, %q)", created.CandidateName, created.PositionID)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %q, want %q", got.ID, created.ID)
	}

	if _, err := store.Get("nope"); err == nil {
		t.Error("expected not-found error for unknown session")
	}
}

func TestStoreAppendTurn(t *testing.T) {
	store := NewStore(0, nil)
	defer store.Close()

	created := store.Create("Sam", "", nil)

	turns := []types.Turn{
		{Role: types.RoleInterviewer, Content: "Tell me about yourself."},
		{Role: types.RoleCandidate, Content: "I build APIs in Go."},
		{Role: types.RoleCandidate, Content: "I also enjoy debugging."},
	}
	for _, turn := range turns {
		if _, err := store.AppendTurn(created.ID, turn); err != nil {
			t.Fatalf("AppendTurn() error = %v", err)
		}
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Turns) != 3 {
		t.Fatalf("turn count = %d, want 3", len(got.Turns))
	}
	for i, turn := range got.Turns {
		if turn.Content != turns[i].Content {
			t.Errorf("turn %d content = %q, want %q", i, turn.Content, turns[i].Content)
		}
		if turn.Timestamp.IsZero() {
			t.Errorf("turn %d missing timestamp", i)
		}
	}

	if _, err := store.AppendTurn("nope", turns[0]); err == nil {
		t.Error("expected not-found error for unknown session")
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore(0, nil)
	defer store.Close()

	created := store.Create("Sam", "", nil)
	if _, err := store.AppendTurn(created.ID, types.Turn{Role: types.RoleCandidate, Content: "original"}); err != nil {
		t.Fatal(err)
	}

	first, _ := store.Get(created.ID)
	first.Turns[0].Content = "mutated"

	second, _ := store.Get(created.ID)
	if second.Turns[0].Content != "original" {
		t.Error("mutating a returned session leaked into the store")
	}
}

func TestStoreCleanup(t *testing.T) {
	store := NewStore(50*time.Millisecond, nil)
	defer store.Close()

	created := store.Create("Sam", "", nil)

	store.mu.Lock()
	store.sessions[created.ID].UpdatedAt = time.Now().Add(-time.Minute)
	store.mu.Unlock()

	store.cleanup()

	if _, err := store.Get(created.ID); err == nil {
		t.Error("expected idle session to be evicted")
	}
	if store.Count() != 0 {
		t.Errorf("count = %d, want 0", store.Count())
	}
}
