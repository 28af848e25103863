package domain

import "time"

// Activity actions recorded in the audit trail.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionCompleted = "completed"
)

// Entity kinds referenced by activity events.
const (
	EntityProject = "project"
	EntityTask    = "task"
)

// ActivityEvent is an append-only audit record. Events are persisted
// asynchronously; failures never affect the outcome of the request that
// produced them.
type ActivityEvent struct {
	UserID    int64
	Entity    string
	EntityID  int64
	Action    string
	Timestamp time.Time
}
