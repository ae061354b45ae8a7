package tickets

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tickets", "t").
	Project("id", "ID").
	Project("external_id", "ExternalID").
	Project("subject", "Subject").
	Project("summary", "Summary").
	Project("conversation", "Conversation").
	Project("likelihood", "Likelihood").
	Project("issue_description", "IssueDescription").
	Project("opened_at", "OpenedAt").
	Project("created_at", "CreatedAt")

// Sequence order is the storage-assigned id; navigation depends on it being
// stable across calls within the same snapshot.
var defaultSort = query.SortField{Field: "ID"}

// Status partitions tickets for reviewer navigation.
type Status string

const (
	StatusUnlabeled Status = "unlabeled"
	StatusPositive  Status = "positive"
	StatusNegative  Status = "negative"
)

// ParseStatus validates a status filter value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUnlabeled, StatusPositive, StatusNegative:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: status %q", ErrInvalidFilter, s)
}

// Filters restricts the review sequence. A nil CategoryID means all
// categories; a nil Status means any annotation state.
//
// Status membership is any-match: positive selects tickets with at least one
// true verdict anywhere in their history, negative at least one false. A
// ticket with mixed history matches both. This deliberately differs from the
// latest-verdict status shown on the ticket itself.
type Filters struct {
	CategoryID *int64  `json:"category_id,omitempty"`
	Status     *Status `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.CategoryID != nil {
		b.WhereExists(
			"SELECT 1 FROM public.ticket_categories tc WHERE tc.ticket_id = t.id AND tc.category_id = $%d",
			*f.CategoryID,
		)
	}

	if f.Status != nil {
		switch *f.Status {
		case StatusUnlabeled:
			b.WhereNotExists("SELECT 1 FROM public.annotations a WHERE a.ticket_id = t.id")
		case StatusPositive:
			b.WhereExists("SELECT 1 FROM public.annotations a WHERE a.ticket_id = t.id AND a.is_app_issue")
		case StatusNegative:
			b.WhereExists("SELECT 1 FROM public.annotations a WHERE a.ticket_id = t.id AND NOT a.is_app_issue")
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// category_id accepts "all" or a category id; status accepts
// unlabeled/positive/negative.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if c := values.Get("category_id"); c != "" && c != "all" {
		id, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return f, fmt.Errorf("%w: category_id %q", ErrInvalidFilter, c)
		}
		f.CategoryID = &id
	}

	if s := values.Get("status"); s != "" {
		status, err := ParseStatus(s)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}

	return f, nil
}

func scanTicket(s repository.Scanner) (Ticket, error) {
	var t Ticket
	err := s.Scan(
		&t.ID,
		&t.ExternalID,
		&t.Subject,
		&t.Summary,
		&t.Conversation,
		&t.Likelihood,
		&t.IssueDescription,
		&t.OpenedAt,
		&t.CreatedAt,
	)
	return t, err
}
