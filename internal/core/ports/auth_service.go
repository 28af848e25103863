package ports

import (
	"context"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateProfileInput is a partial profile update; nil fields are ignored.
type UpdateProfileInput struct {
	FirstName          *string
	LastName           *string
	Email              *string
	EmailNotifications *bool
	DarkMode           *bool
}

// AuthService implements registration, login, and account maintenance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}
