package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a category repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "categories"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Category, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	cats, err := repository.QueryMany(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return cats, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Category, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindByName(ctx context.Context, name string) (*Category, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Name", name)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Seed(ctx context.Context, names []string) (map[string]Category, error) {
	seeded := make(map[string]Category, len(names))

	for _, name := range names {
		existing, err := r.FindByName(ctx, name)
		if err == nil {
			seeded[name] = *existing
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		q := `
			INSERT INTO categories(name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id, name`

		c, err := repository.QueryOne(ctx, r.db, q, []any{name}, scanCategory)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		r.logger.Info("category seeded", "id", c.ID, "name", c.Name)
		seeded[name] = c
	}

	return seeded, nil
}

func (r *repo) ForTicket(ctx context.Context, ticketID int64) ([]Category, error) {
	q := `
		SELECT c.id, c.name
		FROM public.categories c
		JOIN public.ticket_categories tc ON tc.category_id = c.id
		WHERE tc.ticket_id = $1
		ORDER BY c.id`

	cats, err := repository.QueryMany(ctx, r.db, q, []any{ticketID}, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query ticket categories: %w", err)
	}
	return cats, nil
}
