package tickets

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/pagination"
	"github.com/caretide/triage/pkg/routes"
)

// Handler provides HTTP endpoints for ticket operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "tickets"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for ticket endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/tickets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/review", Handler: h.Review},
			{Method: "GET", Pattern: "/next", Handler: h.Next},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// List returns a paginated ticket listing with optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Page(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single ticket with categories and annotation history.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFilter)
		return
	}

	detail, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, detail)
}

// Review resolves the current ticket for the annotation screen. With no
// ticket_id parameter the first unlabeled ticket matching the filters is
// shown, mirroring the default reviewer workflow.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selection(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	review, err := h.sys.Resolve(r.Context(), sel)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, review)
}

// Next returns the id of the ticket following current_ticket_id in the
// filtered sequence, wrapping to the first.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	filters, err := h.reviewFilters(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var currentID *int64
	if c := r.URL.Query().Get("current_ticket_id"); c != "" {
		id, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFilter)
			return
		}
		currentID = &id
	}

	next, err := h.sys.Next(r.Context(), currentID, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"ticket_id": next.ID,
		"filters":   filters,
	})
}

func (h *Handler) selection(r *http.Request) (Selection, error) {
	filters, err := h.reviewFilters(r)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Filters: filters}
	if t := r.URL.Query().Get("ticket_id"); t != "" {
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return Selection{}, ErrInvalidFilter
		}
		sel.TicketID = &id
	}

	return sel, nil
}

// reviewFilters parses filters for the review workflow, defaulting the
// status filter to unlabeled.
func (h *Handler) reviewFilters(r *http.Request) (Filters, error) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		return Filters{}, err
	}

	if filters.Status == nil {
		unlabeled := StatusUnlabeled
		filters.Status = &unlabeled
	}

	return filters, nil
}
