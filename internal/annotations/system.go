package annotations

import "context"

// System defines the public contract for annotation domain operations.
type System interface {
	Handler() *Handler

	// Record validates the target ticket exists and appends a new annotation.
	Record(ctx context.Context, cmd Command) (*Annotation, error)

	// ListForTicket returns a ticket's full annotation history, newest first.
	ListForTicket(ctx context.Context, ticketID int64) ([]Annotation, error)

	// LatestForTicket returns the most recent annotation for a ticket,
	// or nil if the ticket is unlabeled.
	LatestForTicket(ctx context.Context, ticketID int64) (*Annotation, error)
}
