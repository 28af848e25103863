package handler

import "github.com/taskly/tracker-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=50"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// updateProfileRequest is a partial update: nil fields are left alone.
type updateProfileRequest struct {
	FirstName          *string `json:"first_name"          validate:"omitempty,max=100"`
	LastName           *string `json:"last_name"           validate:"omitempty,max=100"`
	Email              *string `json:"email"               validate:"omitempty,email"`
	EmailNotifications *bool   `json:"email_notifications"`
	DarkMode           *bool   `json:"dark_mode"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}
