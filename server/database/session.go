package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/topi314/club-recruitment/server/session"
)

var _ session.Store = (*Database)(nil)

func (d *Database) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	var s session.Session
	err := d.db.GetContext(ctx, &s, `
		SELECT session_id, session_student_id, session_coordinator_id, session_created_at, session_expires_at
		FROM sessions
		WHERE session_id = $1 AND session_expires_at > NOW()
	`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

func (d *Database) Save(ctx context.Context, s session.Session) error {
	query := `
		INSERT INTO sessions (session_id, session_student_id, session_coordinator_id, session_created_at, session_expires_at)
		VALUES (:session_id, :session_student_id, :session_coordinator_id, :session_created_at, :session_expires_at)
		ON CONFLICT (session_id) DO UPDATE SET
			session_student_id = EXCLUDED.session_student_id,
			session_coordinator_id = EXCLUDED.session_coordinator_id,
			session_expires_at = EXCLUDED.session_expires_at
	`
	if _, err := d.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (d *Database) Delete(ctx context.Context, sessionID string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (d *Database) DeleteExpired(ctx context.Context) (int64, error) {
	rs, err := d.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	return rs.RowsAffected()
}
