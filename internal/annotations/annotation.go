// Package annotations implements the review verdict domain. Annotations are
// append-only: recording a verdict always inserts a new row, and the most
// recent row is the ticket's current verdict. Earlier rows are history and
// are never updated or deleted.
package annotations

import "time"

// Annotation is a single reviewer verdict on a ticket.
type Annotation struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	UserID     int64     `json:"user_id"`
	IsAppIssue bool      `json:"is_app_issue"`
	Rationale  *string   `json:"rationale"`
	CreatedAt  time.Time `json:"created_at"`
}

// Command carries the data needed to record a verdict. UserID comes from the
// authenticated request context, never from the request payload.
type Command struct {
	TicketID   int64
	UserID     int64
	IsAppIssue bool
	Rationale  *string
}
