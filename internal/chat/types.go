package chat

import (
	"fmt"
	"strings"
	"time"
)

// Conversation is one entry in the user's conversation directory.
// Title and UpdatedAt are optional; the server may omit either.
type Conversation struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// DisplayTitle returns the title to show in the sidebar, falling back to
// "Chat <id>" for untitled conversations.
func (c Conversation) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Chat %d", c.ID)
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
