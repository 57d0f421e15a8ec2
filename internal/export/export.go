// Package export writes a conversation transcript to a markdown file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chatterm/internal/chat"
)

type Exporter struct {
	overrideDir string
	cwd         string
}

func New(overrideDir string) (*Exporter, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve cwd: %w", err)
	}
	return &Exporter{overrideDir: strings.TrimSpace(overrideDir), cwd: cwd}, nil
}

// Export writes the conversation to disk and returns the file path.
func (e *Exporter) Export(conv chat.Conversation, messages []chat.Message) (string, error) {
	path := e.outputPath(conv)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	md := BuildConversationMarkdown(conv, messages, time.Now().UTC())
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// BuildTranscriptMarkdown renders the message list as alternating sections.
func BuildTranscriptMarkdown(messages []chat.Message) string {
	var b strings.Builder
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		switch m.Role {
		case chat.RoleUser:
			b.WriteString("## You\n\n")
		case chat.RoleAssistant:
			b.WriteString("## Assistant\n\n")
		default:
			b.WriteString("## " + m.Role + "\n\n")
		}
		b.WriteString(content + "\n\n")
	}
	if b.Len() == 0 {
		return ""
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func BuildConversationMarkdown(conv chat.Conversation, messages []chat.Message, now time.Time) string {
	var b strings.Builder
	b.WriteString("# " + conv.DisplayTitle() + "\n\n")
	b.WriteString("Exported: " + now.Format(time.RFC3339) + "\n\n")
	b.WriteString("```text\n")
	b.WriteString(fmt.Sprintf("conversation_id: %d\n", conv.ID))
	b.WriteString(fmt.Sprintf("message_count: %d\n", len(messages)))
	if conv.UpdatedAt != nil {
		b.WriteString("updated_at: " + conv.UpdatedAt.UTC().Format(time.RFC3339) + "\n")
	}
	b.WriteString("```\n\n")

	transcript := BuildTranscriptMarkdown(messages)
	if transcript == "" {
		transcript = "_No messages._\n"
	}
	b.WriteString(transcript)
	return b.String()
}

func (e *Exporter) outputPath(conv chat.Conversation) string {
	dir := e.overrideDir
	if dir == "" {
		dir = filepath.Join(e.cwd, "docs", "chats")
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.cwd, dir)
	}
	return filepath.Join(dir, fmt.Sprintf("chat-%d.md", conv.ID))
}
