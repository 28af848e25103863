package ports

import (
	"context"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// ActivityRepository persists audit events to the activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ActivityRecorder accepts audit events for asynchronous persistence.
// Record must never block the caller beyond queueing.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}
