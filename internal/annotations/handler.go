package annotations

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/caretide/triage/internal/auth"
	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/routes"
)

// Handler provides HTTP endpoints for annotation operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// SubmitRequest is the JSON payload for recording a verdict. IsAppIssue is a
// pointer so a missing field can be distinguished from an explicit false.
type SubmitRequest struct {
	TicketID   *int64  `json:"ticket_id"`
	IsAppIssue *bool   `json:"is_app_issue"`
	Rationale  *string `json:"rationale,omitempty"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "annotations"),
	}
}

// Routes returns the route group definition for annotation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/annotations",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
			{Method: "GET", Pattern: "/ticket/{id}", Handler: h.History},
		},
	}
}

// Submit records a verdict for the authenticated reviewer.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrUnauthenticated)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	if req.TicketID == nil || req.IsAppIssue == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	cmd := Command{
		TicketID:   *req.TicketID,
		UserID:     user.ID,
		IsAppIssue: *req.IsAppIssue,
		Rationale:  req.Rationale,
	}

	a, err := h.sys.Record(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// History returns a ticket's annotation history, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	annos, err := h.sys.ListForTicket(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, annos)
}
