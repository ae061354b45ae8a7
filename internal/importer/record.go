package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/caretide/triage/internal/tickets"
)

// maxLikelihoodScore is the top of the export's integer likelihood scale.
const maxLikelihoodScore = 4

// Record is one line of the bulk export. Field names follow the export
// schema verbatim. TicketID is a json.Number because the source emits both
// numeric and string identifiers.
type Record struct {
	TicketID          json.Number `json:"TICKET_ID"`
	Subject           string      `json:"SUBJECT"`
	Summary           *string     `json:"SUMMARY"`
	ChatHistory       *string     `json:"CHAT_HISTORY"`
	Likelihood        int         `json:"IN_APP_ISSUE_LIKELIHOOD"`
	NotAnIssue        bool        `json:"NOT_AN_ISSUE"`
	IssueDescription  *string     `json:"ISSUE_DESCRIPTION"`
	CreatedAt         string      `json:"CREATED_AT_PST"`
	RequestCategories []string    `json:"REQUEST_CATEGORIES"`
}

// Classify derives the import-time likelihood classification. The second
// return value is false when the record is a confirmed non-issue (scored
// below the maximum and flagged) and must be skipped entirely.
func (r Record) Classify() (tickets.Likelihood, bool) {
	switch {
	case r.Likelihood == maxLikelihoodScore && !r.NotAnIssue:
		return tickets.LikelihoodLikely, true
	case r.Likelihood < maxLikelihoodScore && r.NotAnIssue:
		return "", false
	default:
		return tickets.LikelihoodPossible, true
	}
}

// OpenedAt parses the export's creation date (YYYY-MM-DD).
func (r Record) OpenedAt() (time.Time, error) {
	t, err := time.Parse("2006-01-02", r.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse CREATED_AT_PST %q: %w", r.CreatedAt, err)
	}
	return t, nil
}

// CategoryNames returns the record's category names, trimmed, with empty
// entries dropped. Recognition against the canonical taxonomy happens in
// the import loop.
func (r Record) CategoryNames() []string {
	names := make([]string, 0, len(r.RequestCategories))
	for _, name := range r.RequestCategories {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// Command converts the record to a ticket insert command.
func (r Record) Command(likelihood tickets.Likelihood) (tickets.CreateCommand, error) {
	openedAt, err := r.OpenedAt()
	if err != nil {
		return tickets.CreateCommand{}, err
	}

	return tickets.CreateCommand{
		ExternalID:       r.TicketID.String(),
		Subject:          r.Subject,
		Summary:          r.Summary,
		Conversation:     r.ChatHistory,
		Likelihood:       likelihood,
		IssueDescription: r.IssueDescription,
		OpenedAt:         openedAt,
	}, nil
}
