package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/routes"
)

// Handler provides the dashboard endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dashboard"),
	}
}

// Routes returns the route group definition for the dashboard.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dashboard",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Report},
		},
	}
}

// Report returns per-category counts and the daily time series for the
// requested range.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	q, err := QueryFromValues(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	report, err := h.sys.Report(r.Context(), q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
