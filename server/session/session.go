package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID            string    `db:"session_id"`
	StudentID     int       `db:"session_student_id"`
	CoordinatorID int       `db:"session_coordinator_id"`
	CreatedAt     time.Time `db:"session_created_at"`
	ExpiresAt     time.Time `db:"session_expires_at"`
}

func (s Session) Identity() Identity {
	return Identity{
		StudentID:     s.StudentID,
		CoordinatorID: s.CoordinatorID,
	}
}

func (s *Session) SetIdentity(identity Identity) {
	s.StudentID = identity.StudentID
	s.CoordinatorID = identity.CoordinatorID
}

func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store persists sessions. Get returns ErrNotFound for unknown and expired sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionKey struct{}

var sessionContextKey = &sessionKey{}

func SetSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// Get returns the session attached by Manager.Middleware. Handlers outside the middleware get the zero
// session, whose identity ids are 0 and therefore never match a backend record.
func Get(ctx context.Context) Session {
	session, _ := ctx.Value(sessionContextKey).(Session)
	return session
}
