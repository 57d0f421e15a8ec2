// Package cache keeps a local SQLite copy of the conversation directory and
// message histories so a restarted client paints immediately while fresh
// data loads. The server stays the source of truth: the cache is written
// through after successful fetches and sends, and wiped on logout.
package cache

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"chatterm/internal/chat"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY,
			title TEXT,
			updated_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init cache schema: %w", err)
		}
	}
	return nil
}

// ReplaceConversations swaps the cached directory for the given list.
func (s *Store) ReplaceConversations(convs []chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin conversations tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM conversations;`); err != nil {
		return fmt.Errorf("clear conversations: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO conversations(id, title, updated_at) VALUES(?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare conversation insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range convs {
		var updated string
		if c.UpdatedAt != nil {
			updated = c.UpdatedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := stmt.Exec(c.ID, c.Title, updated); err != nil {
			return fmt.Errorf("insert conversation %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Conversations returns the cached directory in insertion order; callers
// re-sort with chat.SortConversations.
func (s *Store) Conversations() ([]chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, title, updated_at FROM conversations;`)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var out []chat.Conversation
	for rows.Next() {
		var c chat.Conversation
		var updated string
		if err := rows.Scan(&c.ID, &c.Title, &updated); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if updated != "" {
			if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
				c.UpdatedAt = &t
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceMessages swaps the cached history for one conversation.
func (s *Store) ReplaceMessages(convID int64, msgs []chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin messages tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?;`, convID); err != nil {
		return fmt.Errorf("clear messages for %d: %w", convID, err)
	}
	stmt, err := tx.Prepare(`INSERT INTO messages(conversation_id, role, content) VALUES(?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range msgs {
		if _, err := stmt.Exec(convID, m.Role, m.Content); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}
	return tx.Commit()
}

// AppendMessages adds confirmed turns to the end of a cached history.
func (s *Store) AppendMessages(convID int64, msgs ...chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO messages(conversation_id, role, content) VALUES(?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range msgs {
		if _, err := stmt.Exec(convID, m.Role, m.Content); err != nil {
			return fmt.Errorf("append message: %w", err)
		}
	}
	return tx.Commit()
}

// Messages returns the cached history for one conversation in insertion
// order. An unknown conversation yields an empty slice.
func (s *Store) Messages(convID int64) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT role, content FROM messages WHERE conversation_id = ? ORDER BY id;`, convID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Clear drops everything. Runs on logout so nothing from one identity is
// ever shown under another.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM messages;`, `DELETE FROM conversations;`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return tx.Commit()
}
