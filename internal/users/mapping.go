package users

import (
	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("name", "Name").
	Project("created_at", "CreatedAt")

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.CreatedAt,
	)
	return u, err
}
