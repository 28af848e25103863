package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

// Create assigns a fresh id, stamps created_at, and inserts the task.
// completed_at starts null.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTasks)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.CreatedAt = time.Now().UTC()
	t.CompletedAt = nil

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	tasks := []*domain.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update merges only the supplied fields and returns the merged record.
// ClearCompletedAt nulls completed_at; a nil CompletedAt pointer leaves
// it untouched.
func (r *TaskRepository) Update(ctx context.Context, id int64, upd ports.TaskUpdate) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}
	if upd.CompletedAt != nil {
		set["completed_at"] = upd.CompletedAt.UTC()
	} else if upd.ClearCompletedAt {
		set["completed_at"] = nil
	}
	if upd.ProjectID != nil {
		set["project_id"] = *upd.ProjectID
	}
	if upd.UserID != nil {
		set["user_id"] = *upd.UserID
	}
	if upd.DueDate != nil {
		set["due_date"] = upd.DueDate.UTC()
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var t domain.Task
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByProject removes every task referencing the project.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owner- and project-scoped query indexes.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
