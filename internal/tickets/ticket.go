// Package tickets implements the support ticket domain: imported ticket
// records, the filtered review sequence, and current/next navigation.
//
// Review navigation materializes the filtered sequence ordered by id and
// resolves position and successor in memory, so both views of the same
// snapshot agree. Two quirks are load-bearing and must not be "fixed":
// a current ticket outside the filtered sequence reports position 1, and
// Next wraps to the first element when the current ticket is absent or last.
package tickets

import (
	"time"

	"github.com/caretide/triage/internal/annotations"
	"github.com/caretide/triage/internal/categories"
)

// Likelihood is the import-time classification of a ticket.
type Likelihood string

const (
	// LikelihoodLikely marks tickets with the maximum issue score and no
	// not-an-issue flag.
	LikelihoodLikely Likelihood = "likely"
	// LikelihoodPossible marks everything else that survives import.
	LikelihoodPossible Likelihood = "possible"
)

// Ticket is an imported support ticket. OpenedAt is the creation date from
// the source system; CreatedAt is the import timestamp.
type Ticket struct {
	ID               int64      `json:"id"`
	ExternalID       string     `json:"external_id"`
	Subject          string     `json:"subject"`
	Summary          *string    `json:"summary"`
	Conversation     *string    `json:"conversation"`
	Likelihood       Likelihood `json:"likelihood"`
	IssueDescription *string    `json:"issue_description"`
	OpenedAt         time.Time  `json:"opened_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Detail is a ticket with its category memberships and annotation history.
type Detail struct {
	Ticket
	Categories  []categories.Category    `json:"categories"`
	Annotations []annotations.Annotation `json:"annotations"`
}

// Selection identifies the ticket to present for review. A nil TicketID
// selects the first element of the filtered sequence.
type Selection struct {
	TicketID *int64
	Filters  Filters
}

// Review is the resolved state of the annotation screen: the current ticket,
// its 1-based position within the filtered sequence, the sequence size, and
// the latest verdict if one exists.
type Review struct {
	Ticket     Ticket                  `json:"ticket"`
	Categories []categories.Category   `json:"categories"`
	Position   int                     `json:"position"`
	Total      int                     `json:"total"`
	Latest     *annotations.Annotation `json:"latest_annotation,omitempty"`
}
