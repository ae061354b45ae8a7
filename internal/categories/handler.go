package categories

import (
	"log/slog"
	"net/http"

	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/routes"
)

// Handler provides HTTP endpoints for the category taxonomy.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "categories"),
	}
}

// Routes returns the route group definition for category endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/categories",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

// List returns the full taxonomy in id order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cats)
}
