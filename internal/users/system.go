package users

import "context"

// System defines the public contract for user domain operations.
type System interface {
	Find(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindOrCreate returns the user keyed by email, creating it with the
	// given display name on first login.
	FindOrCreate(ctx context.Context, email, name string) (*User, error)
}
