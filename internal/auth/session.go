package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caretide/triage/internal/users"
)

// Session is a server-side login session keyed by an opaque token.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// sessionStore persists sessions in Postgres so logins survive restarts.
type sessionStore struct {
	db  *sql.DB
	ttl time.Duration
}

func newSessionStore(db *sql.DB, ttl time.Duration) *sessionStore {
	return &sessionStore{db: db, ttl: ttl}
}

func (s *sessionStore) create(ctx context.Context, userID int64) (*Session, error) {
	session := &Session{
		Token:  uuid.NewString(),
		UserID: userID,
	}

	err := s.db.QueryRowContext(
		ctx,
		`INSERT INTO sessions(token, user_id, expires_at)
		 VALUES ($1, $2, now() + make_interval(secs => $3))
		 RETURNING created_at, expires_at`,
		session.Token, userID, s.ttl.Seconds(),
	).Scan(&session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// resolve returns the user behind a session token. Expired sessions are
// deleted on sight and reported as ErrSessionExpired.
func (s *sessionStore) resolve(ctx context.Context, token string) (*users.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrUnauthenticated
	}

	var (
		user      users.User
		expiresAt time.Time
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT u.id, u.email, u.name, u.created_at, s.expires_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1`,
		token,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(expiresAt) {
		s.delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return &user, nil
}

func (s *sessionStore) delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// purgeExpired clears sessions past their TTL.
func (s *sessionStore) purgeExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < now()")
	return err
}
