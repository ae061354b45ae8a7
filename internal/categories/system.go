package categories

import "context"

// System defines the public contract for category domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) ([]Category, error)
	Find(ctx context.Context, id int64) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)

	// Seed inserts any of the given category names that do not already
	// exist. Safe to re-run; returns the full set keyed by name.
	Seed(ctx context.Context, names []string) (map[string]Category, error)

	// ForTicket returns the categories attached to a ticket, in id order.
	ForTicket(ctx context.Context, ticketID int64) ([]Category, error)
}
