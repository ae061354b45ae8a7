package tickets

import (
	"context"

	"github.com/caretide/triage/pkg/pagination"
)

// System defines the public contract for ticket domain operations.
type System interface {
	Handler() *Handler

	// Page returns a page of tickets for the queue listing.
	Page(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Ticket], error)

	// List materializes the full filtered sequence ordered by id.
	List(ctx context.Context, filters Filters) ([]Ticket, error)

	// Find returns a ticket with its categories and annotation history.
	Find(ctx context.Context, id int64) (*Detail, error)

	// Resolve determines the current ticket for the review screen. An
	// explicit ticket id is looked up globally and fails with ErrNotFound
	// if absent; otherwise the first element of the filtered sequence is
	// selected, failing with ErrNoMatch when the sequence is empty.
	Resolve(ctx context.Context, sel Selection) (*Review, error)

	// Next returns the ticket following currentID in the filtered
	// sequence, wrapping to the first element when currentID is absent or
	// last. Fails with ErrNoMatch when the sequence is empty.
	Next(ctx context.Context, currentID *int64, filters Filters) (*Ticket, error)
}
