package annotations

import (
	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "annotations", "a").
	Project("id", "ID").
	Project("ticket_id", "TicketID").
	Project("user_id", "UserID").
	Project("is_app_issue", "IsAppIssue").
	Project("rationale", "Rationale").
	Project("created_at", "CreatedAt")

// Equal created_at values are possible within a batch of quick submissions,
// so id breaks ties to keep "latest" deterministic.
var latestSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

func scanAnnotation(s repository.Scanner) (Annotation, error) {
	var a Annotation
	err := s.Scan(
		&a.ID,
		&a.TicketID,
		&a.UserID,
		&a.IsAppIssue,
		&a.Rationale,
		&a.CreatedAt,
	)
	return a, err
}
