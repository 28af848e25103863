package ports

import (
	"context"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// UserUpdate is a partial update: only non-nil fields are written.
type UserUpdate struct {
	FirstName          *string
	LastName           *string
	Email              *string
	EmailNotifications *bool
	DarkMode           *bool
	PasswordHash       *string
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create assigns a fresh id and persists the user.
	// Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update merges the supplied fields and returns the merged record.
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
}
