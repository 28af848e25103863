package domain

import "time"

// MaxProjectsPerUser is the hard cap on projects a single user may own.
const MaxProjectsPerUser = 4

// DefaultProjectStatus is applied when no status is supplied at creation.
const DefaultProjectStatus = "planning"

const (
	ProjectNameMaxLen        = 100
	ProjectDescriptionMaxLen = 500
)

// Project groups tasks under a single owner. Status is a free-form string;
// the lifecycle rules only constrain name/description lengths and the
// per-user quota.
type Project struct {
	ID          int64      `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      string     `json:"status" bson:"status"`
	UserID      int64      `json:"user_id" bson:"user_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
}
