package categories

import (
	"github.com/caretide/triage/pkg/query"
	"github.com/caretide/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "categories", "c").
	Project("id", "ID").
	Project("name", "Name")

var defaultSort = query.SortField{Field: "ID"}

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(&c.ID, &c.Name)
	return c, err
}
