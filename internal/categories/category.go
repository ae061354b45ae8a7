// Package categories implements the ticket taxonomy domain. The taxonomy is a
// fixed set of ten categories seeded at import time; "others" catches tickets
// with no recognized category. Tickets relate to categories many-to-many
// through an explicit join table.
package categories

// Category is a taxonomy label attachable to tickets.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Fallback is the catch-all category for tickets with no recognized category.
const Fallback = "others"

// Canonical lists the seeded taxonomy in seed order. Fallback must be a member.
var Canonical = []string{
	"account",
	"background checks",
	"document assistance",
	"license and certification",
	"shift attendance",
	"shift cancellation",
	"payment",
	"technical issues",
	"timesheet submission",
	Fallback,
}
