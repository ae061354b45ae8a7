package tickets

import (
	"context"
	"time"

	"github.com/caretide/triage/pkg/repository"
)

// CreateCommand carries the data needed to insert an imported ticket.
type CreateCommand struct {
	ExternalID       string
	Subject          string
	Summary          *string
	Conversation     *string
	Likelihood       Likelihood
	IssueDescription *string
	OpenedAt         time.Time
}

// The insert helpers below run inside the importer's transaction, so they
// take a Querier/Executor instead of going through the repository pool.

// InsertTx inserts a ticket and returns its storage-assigned id.
func InsertTx(ctx context.Context, q repository.Querier, cmd CreateCommand) (int64, error) {
	stmt := `
		INSERT INTO tickets(external_id, subject, summary, conversation, likelihood, issue_description, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := q.QueryRowContext(
		ctx, stmt,
		cmd.ExternalID,
		cmd.Subject,
		cmd.Summary,
		cmd.Conversation,
		cmd.Likelihood,
		cmd.IssueDescription,
		cmd.OpenedAt,
	).Scan(&id)
	return id, err
}

// ExistsByExternalID reports whether a ticket with the given external
// identifier is already present, including rows pending in the current
// transaction.
func ExistsByExternalID(ctx context.Context, q repository.Querier, externalID string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM tickets WHERE external_id = $1)",
		externalID,
	).Scan(&exists)
	return exists, err
}

// AttachCategoryTx adds a category membership for a ticket.
func AttachCategoryTx(ctx context.Context, e repository.Executor, ticketID, categoryID int64) error {
	_, err := e.ExecContext(
		ctx,
		"INSERT INTO ticket_categories(ticket_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		ticketID, categoryID,
	)
	return err
}
