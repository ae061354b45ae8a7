package annotations

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

// New creates an annotation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "annotations"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Record(ctx context.Context, cmd Command) (*Annotation, error) {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM public.tickets WHERE id = $1)",
		cmd.TicketID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check ticket: %w", err)
	}
	if !exists {
		return nil, ErrTicketNotFound
	}

	q := `
		INSERT INTO annotations(ticket_id, user_id, is_app_issue, rationale)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ticket_id, user_id, is_app_issue, rationale, created_at`

	insertArgs := []any{cmd.TicketID, cmd.UserID, cmd.IsAppIssue, cmd.Rationale}

	a, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanAnnotation)
	if err != nil {
		return nil, fmt.Errorf("insert annotation: %w", err)
	}

	r.logger.Info(
		"annotation recorded",
		"id", a.ID,
		"ticket_id", a.TicketID,
		"user_id", a.UserID,
		"is_app_issue", a.IsAppIssue,
	)
	return &a, nil
}

func (r *repo) ListForTicket(ctx context.Context, ticketID int64) ([]Annotation, error) {
	q, args := query.
		NewBuilder(projection, latestSort...).
		WhereEquals("TicketID", ticketID).
		Build()

	annos, err := repository.QueryMany(ctx, r.db, q, args, scanAnnotation)
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}
	return annos, nil
}

func (r *repo) LatestForTicket(ctx context.Context, ticketID int64) (*Annotation, error) {
	q, args := query.
		NewBuilder(projection, latestSort...).
		WhereEquals("TicketID", ticketID).
		BuildSingleOrNull()

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnnotation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest annotation: %w", err)
	}
	return &a, nil
}
