package importer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/caretide/triage/pkg/handlers"
	"github.com/caretide/triage/pkg/routes"
)

// Handler provides HTTP endpoints for bulk import operations.
type Handler struct {
	sys       System
	logger    *slog.Logger
	maxUpload int64
}

// ReplayRequest is the JSON payload for re-running an archived export.
type ReplayRequest struct {
	Key string `json:"key"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "imports"),
	}
}

// WithMaxUpload caps the accepted upload size in bytes. Zero means no cap.
func (h *Handler) WithMaxUpload(limit int64) *Handler {
	h.maxUpload = limit
	return h
}

// Routes returns the route group definition for import endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/imports",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "POST", Pattern: "/replay", Handler: h.Replay},
		},
	}
}

// Upload accepts a gzip-compressed JSONL export as the multipart "file"
// part, archives it, and loads it.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyUpload)
		return
	}
	defer file.Close()

	result, err := h.sys.Import(r.Context(), header.Filename, file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Replay re-runs a previously archived export by storage key.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("replay requires an archive key"))
		return
	}

	result, err := h.sys.Replay(r.Context(), req.Key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
