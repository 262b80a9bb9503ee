package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cookieName = "session"

func NewManager(cfg Config, defaults Identity, store Store) *Manager {
	return &Manager{
		cfg:      cfg,
		defaults: defaults,
		store:    store,
		now:      time.Now,
	}
}

type Manager struct {
	cfg      Config
	defaults Identity
	store    Store
	now      func() time.Time
}

func (m *Manager) Defaults() Identity {
	return m.defaults
}

// Middleware attaches the caller's session to the request context, creating one with the default
// identity when the browser has none or its session expired.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var session *Session
		cookie, err := r.Cookie(cookieName)
		if err != nil && !errors.Is(err, http.ErrNoCookie) {
			slog.ErrorContext(ctx, "Failed to read session cookie", slog.Any("err", err))
		}

		if cookie != nil {
			session, err = m.store.Get(ctx, cookie.Value)
			if err != nil && !errors.Is(err, ErrNotFound) {
				slog.ErrorContext(ctx, "Failed to get session", slog.Any("err", err))
			}
		}

		if session == nil {
			newSession, err := m.create(ctx, m.defaults)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to create session", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			session = newSession
			m.addCookie(w, *session)
		}

		next.ServeHTTP(w, r.WithContext(SetSession(ctx, *session)))
	})
}

// SetIdentity stores identity on the request's session.
func (m *Manager) SetIdentity(ctx context.Context, identity Identity) (Session, error) {
	session := Get(ctx)
	if session.ID == "" {
		return Session{}, ErrNotFound
	}

	session.SetIdentity(identity)
	if err := m.store.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Cleanup periodically deletes expired sessions until ctx is done.
func (m *Manager) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.doCleanup(ctx)
		}
	}
}

func (m *Manager) doCleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	deleted, err := m.store.DeleteExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to cleanup expired sessions", slog.Any("err", err))
		return
	}
	if deleted > 0 {
		slog.DebugContext(ctx, "Cleaned up expired sessions", slog.Int64("sessions", deleted))
	}
}

func (m *Manager) create(ctx context.Context, identity Identity) (*Session, error) {
	now := m.now()
	session := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.MaxAge.Std()),
	}
	session.SetIdentity(identity)

	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *Manager) addCookie(w http.ResponseWriter, session Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    session.ID,
		Expires:  session.ExpiresAt,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.cfg.SecureCookie,
		HttpOnly: true,
		Path:     "/",
	})
}
