// Package storage persists conversation sessions in PostgreSQL, so restarts
// do not drop users out of their wizards.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/burlang/tolibot/core/telegram/scene"
)

type sessionRow struct {
	UserID  int64  `db:"user_id"`
	Scene   string `db:"scene"`
	Step    int    `db:"step"`
	Flow    []byte `db:"flow"`
	Cursors []byte `db:"cursors"`
}

// SessionStore implements scene.Store on top of a sessions table with the
// scratch state and cursors stored as JSONB.
type SessionStore struct {
	db   *sqlx.DB
	home scene.ID
}

// NewSessionStore wraps an open database handle.
func NewSessionStore(db *sqlx.DB, home scene.ID) *SessionStore {
	return &SessionStore{db: db, home: home}
}

// Get loads the session for a user, or returns a fresh one at the home scene.
func (s *SessionStore) Get(userID int64) (*scene.Session, error) {
	var row sessionRow
	err := s.db.Get(&row,
		`SELECT user_id, scene, step, flow, cursors FROM sessions WHERE user_id = $1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return scene.NewSession(s.home), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session for user %d: %w", userID, err)
	}

	sess := scene.NewSession(s.home)
	sess.Scene = scene.ID(row.Scene)
	sess.Step = row.Step
	if len(row.Flow) > 0 {
		if err := json.Unmarshal(row.Flow, &sess.Flow); err != nil {
			return nil, fmt.Errorf("decode session flow for user %d: %w", userID, err)
		}
	}
	if len(row.Cursors) > 0 {
		if err := json.Unmarshal(row.Cursors, &sess.Cursors); err != nil {
			return nil, fmt.Errorf("decode session cursors for user %d: %w", userID, err)
		}
	}
	return sess, nil
}

// Put upserts the session for a user.
func (s *SessionStore) Put(userID int64, sess *scene.Session) error {
	flow, err := json.Marshal(sess.Flow)
	if err != nil {
		return fmt.Errorf("encode session flow: %w", err)
	}
	cursors, err := json.Marshal(sess.Cursors)
	if err != nil {
		return fmt.Errorf("encode session cursors: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (user_id, scene, step, flow, cursors, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		   scene = EXCLUDED.scene,
		   step = EXCLUDED.step,
		   flow = EXCLUDED.flow,
		   cursors = EXCLUDED.cursors,
		   updated_at = now()`,
		userID, string(sess.Scene), sess.Step, flow, cursors,
	)
	if err != nil {
		return fmt.Errorf("save session for user %d: %w", userID, err)
	}
	return nil
}
