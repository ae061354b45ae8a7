package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/routes"
)

// flowCookieTTL bounds the state and nonce cookies issued at login.
const flowCookieTTL = 10 * time.Minute

// Handler provides the browser-facing login endpoints.
type Handler struct {
	sys    *oidcSystem
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys *oidcSystem, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/login", Handler: h.Login},
			{Method: "GET", Pattern: "/callback", Handler: h.Callback},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.Me},
		},
	}
}

// Login issues state and nonce cookies and redirects to the identity
// provider.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	nonce := uuid.NewString()

	url, err := h.sys.authURL(state, nonce)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, err)
		return
	}

	h.setFlowCookie(w, h.stateCookie(), state)
	h.setFlowCookie(w, h.nonceCookie(), nonce)
	http.Redirect(w, r, url, http.StatusFound)
}

// Callback completes the login: it checks state, exchanges the code, and
// sets the session cookie.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(h.stateCookie())
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrStateMismatch), ErrStateMismatch)
		return
	}

	nonceCookie, err := r.Cookie(h.nonceCookie())
	if err != nil || nonceCookie.Value == "" {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrStateMismatch), ErrStateMismatch)
		return
	}

	session, err := h.sys.exchange(r.Context(), r.URL.Query().Get("code"), nonceCookie.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.clearCookie(w, h.stateCookie())
	h.clearCookie(w, h.nonceCookie())

	http.SetCookie(w, &http.Cookie{
		Name:     h.sys.cfg.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.sys.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout deletes the session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.sys.cfg.CookieName); err == nil {
		if err := h.sys.logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("session delete failed", "error", err)
		}
	}

	h.clearCookie(w, h.sys.cfg.CookieName)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user, for the review UI's session probe.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.sys.cfg.CookieName)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthenticated)
		return
	}

	user, err := h.sys.sessions.resolve(r.Context(), cookie.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) stateCookie() string { return h.sys.cfg.CookieName + "_state" }
func (h *Handler) nonceCookie() string { return h.sys.cfg.CookieName + "_nonce" }

func (h *Handler) setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(flowCookieTTL),
		HttpOnly: true,
		Secure:   h.sys.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.sys.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
