package tickets

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/caretide/triage/internal/annotations"
	"github.com/caretide/triage/internal/categories"
	"github.com/caretide/triage/pkg/pagination"
	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	cats       categories.System
	annos      annotations.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a ticket repository implementing the System interface.
func New(
	db *sql.DB,
	cats categories.System,
	annos annotations.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		cats:       cats,
		annos:      annos,
		logger:     logger.With("system", "tickets"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Page(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Ticket], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Subject", "ExternalID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTicket)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Ticket, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	seq, err := repository.QueryMany(ctx, r.db, q, args, scanTicket)
	if err != nil {
		return nil, fmt.Errorf("query ticket sequence: %w", err)
	}
	return seq, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Detail, error) {
	t, err := r.findTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	cats, err := r.cats.ForTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	annos, err := r.annos.ListForTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Ticket:      *t,
		Categories:  cats,
		Annotations: annos,
	}, nil
}

func (r *repo) Resolve(ctx context.Context, sel Selection) (*Review, error) {
	seq, err := r.List(ctx, sel.Filters)
	if err != nil {
		return nil, err
	}

	var current *Ticket
	if sel.TicketID != nil {
		// Explicit id resolves globally, even outside the filtered view.
		current, err = r.findTicket(ctx, *sel.TicketID)
		if err != nil {
			return nil, err
		}
	} else {
		if len(seq) == 0 {
			return nil, ErrNoMatch
		}
		current = &seq[0]
	}

	cats, err := r.cats.ForTicket(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	latest, err := r.annos.LatestForTicket(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	return &Review{
		Ticket:     *current,
		Categories: cats,
		Position:   PositionOf(seq, current.ID),
		Total:      len(seq),
		Latest:     latest,
	}, nil
}

func (r *repo) Next(ctx context.Context, currentID *int64, filters Filters) (*Ticket, error) {
	seq, err := r.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, ErrNoMatch
	}

	next := NextAfter(seq, currentID)
	return &next, nil
}

func (r *repo) findTicket(ctx context.Context, id int64) (*Ticket, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTicket)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}
