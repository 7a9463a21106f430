package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents one pointer control run, from start to shutdown.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
	Frames    int64
	Clicks    int64
}

// PointerEvent is a recorded button transition within a session.
type PointerEvent struct {
	ID        int64
	SessionID string
	Type      string
	X         int
	Y         int
	CreatedAt time.Time
}

// SessionRepository provides access to control sessions and their events.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new session and returns it.
func (r *SessionRepository) Start() (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		sess.ID, sess.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// End marks a session as finished and records its frame and click totals.
func (r *SessionRepository) End(id string, frames, clicks int64) error {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ?, clicks = ? WHERE id = ?`,
		now, frames, clicks, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, started_at, ended_at, frames, clicks FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.StartedAt, &endedAt, &sess.Frames, &sess.Clicks)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, frames, clicks
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var endedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &sess.StartedAt, &endedAt, &sess.Frames, &sess.Clicks); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// RecordEvent stores a button transition for a session.
func (r *SessionRepository) RecordEvent(sessionID, eventType string, x, y int) error {
	_, err := r.db.Exec(
		`INSERT INTO pointer_events (session_id, type, x, y) VALUES (?, ?, ?, ?)`,
		sessionID, eventType, x, y,
	)
	return err
}

// EventsBySession retrieves all events for a session in insertion order.
func (r *SessionRepository) EventsBySession(sessionID string) ([]*PointerEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, type, x, y, created_at
		 FROM pointer_events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*PointerEvent
	for rows.Next() {
		ev := &PointerEvent{}
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Type, &ev.X, &ev.Y, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
