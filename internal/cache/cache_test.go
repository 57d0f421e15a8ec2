package cache

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"chatterm/internal/chat"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConversationsRoundTrip(t *testing.T) {
	s := openStore(t)
	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := []chat.Conversation{
		{ID: 1, Title: "First", UpdatedAt: &when},
		{ID: 2},
	}
	if err := s.ReplaceConversations(in); err != nil {
		t.Fatalf("ReplaceConversations: %v", err)
	}

	got, err := s.Conversations()
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(got))
	}
	if got[0].Title != "First" || got[0].UpdatedAt == nil || !got[0].UpdatedAt.Equal(when) {
		t.Fatalf("first conversation mismatch: %+v", got[0])
	}
	if got[1].UpdatedAt != nil {
		t.Fatalf("missing timestamp should stay missing: %+v", got[1])
	}
}

func TestReplaceConversationsDropsStaleEntries(t *testing.T) {
	s := openStore(t)
	if err := s.ReplaceConversations([]chat.Conversation{{ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.ReplaceConversations([]chat.Conversation{{ID: 3}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := s.Conversations()
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("stale entries survived: %+v", got)
	}
}

func TestMessagesReplaceAndAppend(t *testing.T) {
	s := openStore(t)
	hist := []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
	}
	if err := s.ReplaceMessages(7, hist); err != nil {
		t.Fatalf("ReplaceMessages: %v", err)
	}
	if err := s.AppendMessages(7,
		chat.Message{Role: chat.RoleUser, Content: "more"},
		chat.Message{Role: chat.RoleAssistant, Content: "sure"},
	); err != nil {
		t.Fatalf("AppendMessages: %v", err)
	}

	got, err := s.Messages(7)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	want := append(hist,
		chat.Message{Role: chat.RoleUser, Content: "more"},
		chat.Message{Role: chat.RoleAssistant, Content: "sure"},
	)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("history mismatch: got=%+v want=%+v", got, want)
	}

	// Histories are per conversation.
	other, err := s.Messages(8)
	if err != nil {
		t.Fatalf("Messages(8): %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty history for other conversation, got %+v", other)
	}
}

func TestClearWipesEverything(t *testing.T) {
	s := openStore(t)
	if err := s.ReplaceConversations([]chat.Conversation{{ID: 1}}); err != nil {
		t.Fatalf("seed conversations: %v", err)
	}
	if err := s.ReplaceMessages(1, []chat.Message{{Role: chat.RoleUser, Content: "x"}}); err != nil {
		t.Fatalf("seed messages: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	convs, err := s.Conversations()
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	msgs, err := s.Messages(1)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(convs) != 0 || len(msgs) != 0 {
		t.Fatalf("cache not empty after Clear: convs=%+v msgs=%+v", convs, msgs)
	}
}
