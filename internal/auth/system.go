package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/caretide/triage/internal/config"
	"github.com/caretide/triage/internal/users"
	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/lifecycle"
)

// System defines the public contract for authentication.
type System interface {
	Handler() *Handler
	Start(lc *lifecycle.Coordinator) error

	// RequireUser rejects requests without a live session and attaches
	// the resolved user to the request context.
	RequireUser(next http.Handler) http.Handler
}

type oidcSystem struct {
	cfg      *config.AuthConfig
	users    users.System
	sessions *sessionStore
	logger   *slog.Logger

	mu       sync.RWMutex
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// New creates the auth system. Provider discovery is deferred to Start so
// construction never touches the network.
func New(cfg *config.AuthConfig, db *sql.DB, users users.System, logger *slog.Logger) System {
	return &oidcSystem{
		cfg:      cfg,
		users:    users,
		sessions: newSessionStore(db, cfg.SessionTTLDuration()),
		logger:   logger.With("system", "auth"),
	}
}

func (s *oidcSystem) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *oidcSystem) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting auth system")

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), s.cfg.Issuer)
		if err != nil {
			s.logger.Error("identity provider discovery failed", "issuer", s.cfg.Issuer, "error", err)
			return
		}

		s.mu.Lock()
		s.oauth = &oauth2.Config{
			ClientID:     s.cfg.ClientID,
			ClientSecret: s.cfg.ClientSecret,
			RedirectURL:  s.cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
		s.verifier = provider.Verifier(&oidc.Config{ClientID: s.cfg.ClientID})
		s.mu.Unlock()

		if err := s.sessions.purgeExpired(lc.Context()); err != nil {
			s.logger.Warn("expired session purge failed", "error", err)
		}

		s.logger.Info("identity provider ready", "issuer", s.cfg.Issuer)
	})

	return nil
}

// provider returns the discovered OAuth config and verifier, or an error
// when discovery has not completed.
func (s *oidcSystem) provider() (*oauth2.Config, *oidc.IDTokenVerifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.oauth == nil || s.verifier == nil {
		return nil, nil, fmt.Errorf("identity provider not ready")
	}
	return s.oauth, s.verifier, nil
}

// authURL builds the provider redirect for a login attempt.
func (s *oidcSystem) authURL(state, nonce string) (string, error) {
	oauth, _, err := s.provider()
	if err != nil {
		return "", err
	}
	return oauth.AuthCodeURL(state, oidc.Nonce(nonce)), nil
}

// claims is the subset of the identity token used for account resolution.
type claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// exchange redeems the authorization code, verifies the identity token,
// enforces the workspace domain, and returns a session for the resolved
// user.
func (s *oidcSystem) exchange(ctx context.Context, code, nonce string) (*Session, error) {
	oauth, verifier, err := s.provider()
	if err != nil {
		return nil, err
	}

	token, err := oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("%w: response missing id_token", ErrExchangeFailed)
	}

	idToken, err := verifier.Verify(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if idToken.Nonce != nonce {
		return nil, fmt.Errorf("%w: nonce mismatch", ErrExchangeFailed)
	}

	var c claims
	if err := idToken.Claims(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if !c.EmailVerified {
		return nil, fmt.Errorf("%w: email not verified", ErrExchangeFailed)
	}

	email := strings.ToLower(c.Email)
	if !domainAllowed(email, s.cfg.AllowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	name := c.Name
	if name == "" {
		name = email
	}

	user, err := s.users.FindOrCreate(ctx, email, name)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login", "user", user.Email)
	return session, nil
}

// domainAllowed reports whether email belongs to the allowed workspace
// domain. Matching is case-insensitive on the full domain suffix.
func domainAllowed(email, domain string) bool {
	if domain == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain))
}

func (s *oidcSystem) logout(ctx context.Context, token string) error {
	return s.sessions.delete(ctx, token)
}

func (s *oidcSystem) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cfg.CookieName)
		if err != nil {
			handlers.RespondError(w, s.logger, http.StatusUnauthorized, ErrUnauthenticated)
			return
		}

		user, err := s.sessions.resolve(r.Context(), cookie.Value)
		if err != nil {
			handlers.RespondError(w, s.logger, MapHTTPStatus(err), err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
