package api

import (
	"github.com/caretide/triage/internal/annotations"
	"github.com/caretide/triage/internal/auth"
	"github.com/caretide/triage/internal/categories"
	"github.com/caretide/triage/internal/config"
	"github.com/caretide/triage/internal/dashboard"
	"github.com/caretide/triage/internal/importer"
	"github.com/caretide/triage/internal/tickets"
	"github.com/caretide/triage/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users       users.System
	Categories  categories.System
	Tickets     tickets.System
	Annotations annotations.System
	Importer    importer.System
	Dashboard   dashboard.System
	Auth        auth.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	usersSystem := users.New(db, runtime.Logger)
	categoriesSystem := categories.New(db, runtime.Logger)
	annotationsSystem := annotations.New(db, runtime.Logger)

	ticketsSystem := tickets.New(
		db,
		categoriesSystem,
		annotationsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	importerSystem := importer.New(
		db,
		categoriesSystem,
		runtime.Storage,
		runtime.Logger,
	)

	dashboardSystem := dashboard.New(db, runtime.Logger)

	authSystem := auth.New(&cfg.Auth, db, usersSystem, runtime.Logger)

	return &Domain{
		Users:       usersSystem,
		Categories:  categoriesSystem,
		Tickets:     ticketsSystem,
		Annotations: annotationsSystem,
		Importer:    importerSystem,
		Dashboard:   dashboardSystem,
		Auth:        authSystem,
	}
}
