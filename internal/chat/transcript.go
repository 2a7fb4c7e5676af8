package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fixdesk/fixdesk/internal/db"
)

// Transcripts persists chat sessions and their messages.
type Transcripts struct {
	db *db.DB
}

// NewTranscripts creates a transcript store over the given database.
func NewTranscripts(database *db.DB) *Transcripts {
	return &Transcripts{db: database}
}

// StoredMessage is one persisted chat message.
type StoredMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EnsureSession registers a session row if it does not exist yet.
func (t *Transcripts) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("ensuring chat session: %w", err)
	}
	return nil
}

// Record appends one message to a session transcript.
func (t *Transcripts) Record(ctx context.Context, sessionID, role, content, intentLabel string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, role, content, intent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), sessionID, role, content, intentLabel, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording chat message: %w", err)
	}
	return nil
}

// Messages returns a session's transcript, oldest first.
func (t *Transcripts) Messages(ctx context.Context, sessionID string) ([]StoredMessage, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, intent, created_at
		 FROM chat_messages WHERE session_id = ? ORDER BY rowid ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chat messages: %w", err)
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Intent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
