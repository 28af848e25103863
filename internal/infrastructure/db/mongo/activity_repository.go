package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

const collectionActivity = "activity_log"

// ActivityRepository appends audit events to the activity_log collection.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	doc := bson.M{
		"user_id":      event.UserID,
		"entity":       event.Entity,
		"entity_id":    event.EntityID,
		"action":       event.Action,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(collectionActivity).InsertOne(ctx, doc)
	return err
}
