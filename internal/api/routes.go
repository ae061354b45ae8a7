package api

import (
	"net/http"

	"github.com/caretide/triage/internal/config"
	"github.com/caretide/triage/pkg/openapi"
	"github.com/caretide/triage/pkg/routes"
)

// registerRoutes wires the domain handlers into the module mux. Login
// endpoints and the OpenAPI document stay open; everything else sits
// behind the session gate.
func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	spec []byte,
) {
	routes.Register(mux, domain.Auth.Handler().Routes())
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	protected := http.NewServeMux()
	routes.Register(
		protected,
		domain.Tickets.Handler().Routes(),
		domain.Annotations.Handler().Routes(),
		domain.Categories.Handler().Routes(),
		domain.Dashboard.Handler().Routes(),
		domain.Importer.Handler().WithMaxUpload(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	mux.Handle("/", domain.Auth.RequireUser(protected))
}
