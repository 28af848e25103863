package domain

import "time"

// User models a registered account. Every project and task is exclusively
// owned by one user; nothing is shared across users.
type User struct {
	ID                 int64     `json:"id" bson:"_id"`
	Username           string    `json:"username" bson:"username"`
	PasswordHash       string    `json:"-" bson:"password_hash"`
	FirstName          string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Email              string    `json:"email,omitempty" bson:"email,omitempty"`
	EmailNotifications bool      `json:"email_notifications" bson:"email_notifications"`
	DarkMode           bool      `json:"dark_mode" bson:"dark_mode"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}
