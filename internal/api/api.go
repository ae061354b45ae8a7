// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/caretide/triage/internal/config"
	"github.com/caretide/triage/internal/infrastructure"
	"github.com/caretide/triage/pkg/middleware"
	"github.com/caretide/triage/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	if err := domain.Auth.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("auth start failed: %w", err)
	}

	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, fmt.Errorf("openapi spec build failed: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
