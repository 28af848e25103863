package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

func newTaskService(projects *stubProjectRepo, tasks *stubTaskRepo) (*TaskService, *captureRecorder) {
	recorder := &captureRecorder{}
	guard := NewGuard(projects, tasks)
	svc := NewTaskService(tasks, guard, recorder, discardLogger)
	return svc, recorder
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_DerivesOwnerFromProject(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	p := seedProject(projects, 7, "home")

	task, err := svc.Create(context.Background(), 7, ports.CreateTaskInput{
		Title:     "buy milk",
		ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.UserID != 7 {
		t.Errorf("owner must come from the project, got %d", task.UserID)
	}
	if task.Status != domain.DefaultTaskStatus {
		t.Errorf("expected default status %q, got %q", domain.DefaultTaskStatus, task.Status)
	}
	if task.Completed {
		t.Error("new tasks start incomplete")
	}
	if task.CompletedAt != nil {
		t.Error("new tasks start with null completed_at")
	}
}

func TestTaskService_Create_ProjectNotFound(t *testing.T) {
	svc, _ := newTaskService(newStubProjectRepo(), newStubTaskRepo())

	_, err := svc.Create(context.Background(), 7, ports.CreateTaskInput{Title: "t", ProjectID: 999})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Create_ForbiddenProject(t *testing.T) {
	projects := newStubProjectRepo()
	svc, _ := newTaskService(projects, newStubTaskRepo())
	p := seedProject(projects, 7, "mine")

	_, err := svc.Create(context.Background(), 8, ports.CreateTaskInput{Title: "t", ProjectID: p.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Create_ValidatesTitle(t *testing.T) {
	projects := newStubProjectRepo()
	svc, _ := newTaskService(projects, newStubTaskRepo())
	p := seedProject(projects, 7, "home")

	_, err := svc.Create(context.Background(), 7, ports.CreateTaskInput{Title: "", ProjectID: p.ID})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}

	_, err = svc.Create(context.Background(), 7, ports.CreateTaskInput{
		Title:     strings.Repeat("x", domain.ProjectNameMaxLen+1),
		ProjectID: p.ID,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for long title, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Completion transitions
// ---------------------------------------------------------------------------

func seedTask(projects *stubProjectRepo, tasks *stubTaskRepo, ownerID int64) *domain.Task {
	p := seedProject(projects, ownerID, "p")
	task, _ := tasks.Create(context.Background(), &domain.Task{
		Title:     "t",
		Status:    domain.DefaultTaskStatus,
		UserID:    ownerID,
		ProjectID: p.ID,
	})
	return task
}

func TestTaskService_Update_CompleteStampsTimestamp(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)

	before := time.Now().UTC()
	done := true
	got, err := svc.Update(context.Background(), 7, task.ID, ports.UpdateTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Completed {
		t.Fatal("task must be completed")
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at must be stamped on false→true")
	}
	if got.CompletedAt.Before(before) {
		t.Errorf("completed_at %v predates the transition", got.CompletedAt)
	}
}

func TestTaskService_Update_ReCompleteLeavesTimestamp(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)
	ctx := context.Background()

	done := true
	first, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// Same value again: no edge, so completed_at is untouched.
	second, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if second.CompletedAt == nil || !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("completed_at must survive a no-op transition: first=%v second=%v", first.CompletedAt, second.CompletedAt)
	}
}

func TestTaskService_Update_UncompleteClearsTimestamp(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)
	ctx := context.Background()

	done := true
	if _, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Completed: &done}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	undone := false
	got, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Completed: &undone})
	if err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}
	if got.Completed {
		t.Error("task must be incomplete")
	}
	if got.CompletedAt != nil {
		t.Errorf("completed_at must be cleared on true→false, got %v", got.CompletedAt)
	}
}

func TestTaskService_Update_OmittedFlagLeavesCompletion(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)
	ctx := context.Background()

	done := true
	first, _ := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Completed: &done})

	title := "renamed"
	got, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{Title: &title})
	if err != nil {
		t.Fatalf("title-only update failed: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("completion state must be untouched by unrelated updates, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Complete operation
// ---------------------------------------------------------------------------

func TestTaskService_Complete_ForcesStatusAndTimestamp(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, recorder := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)

	got, err := svc.Complete(context.Background(), 7, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Completed {
		t.Error("task must be completed")
	}
	if got.Status != domain.TaskStatusCompleted {
		t.Errorf("status must be forced to %q, got %q", domain.TaskStatusCompleted, got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at must be stamped")
	}

	events := recorder.all()
	if len(events) != 1 || events[0].Action != domain.ActionCompleted {
		t.Errorf("expected one task-completed event, got %+v", events)
	}
}

func TestTaskService_Complete_RefreshesTimestamp(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)
	ctx := context.Background()

	first, err := svc.Complete(ctx, 7, task.ID)
	if err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	second, err := svc.Complete(ctx, 7, task.ID)
	if err != nil {
		t.Fatalf("second complete failed: %v", err)
	}
	if second.CompletedAt.Before(*first.CompletedAt) {
		t.Errorf("re-completion must refresh the timestamp: first=%v second=%v", first.CompletedAt, second.CompletedAt)
	}
}

func TestTaskService_Complete_Forbidden(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)

	_, err := svc.Complete(context.Background(), 8, task.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Moving between projects
// ---------------------------------------------------------------------------

func TestTaskService_Update_MoveRederivesOwner(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	ctx := context.Background()

	task := seedTask(projects, tasks, 7)
	dest := seedProject(projects, 7, "destination")

	got, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{ProjectID: &dest.ID})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if got.ProjectID != dest.ID {
		t.Errorf("expected project %d, got %d", dest.ID, got.ProjectID)
	}
	if got.UserID != dest.UserID {
		t.Errorf("owner must be re-derived from the destination project, got %d", got.UserID)
	}
}

func TestTaskService_Update_MoveToForeignProjectForbidden(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	ctx := context.Background()

	task := seedTask(projects, tasks, 7)
	foreign := seedProject(projects, 8, "not yours")

	_, err := svc.Update(ctx, 7, task.ID, ports.UpdateTaskInput{ProjectID: &foreign.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if stored, _ := tasks.FindByID(ctx, task.ID); stored.ProjectID != task.ProjectID {
		t.Error("forbidden move must not modify the task")
	}
}

func TestTaskService_Update_MoveToMissingProject(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)

	task := seedTask(projects, tasks, 7)
	missing := int64(999)
	_, err := svc.Update(context.Background(), 7, task.ID, ports.UpdateTaskInput{ProjectID: &missing})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestTaskService_List_ScopedToProject(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	ctx := context.Background()

	a := seedProject(projects, 7, "a")
	b := seedProject(projects, 7, "b")
	_, _ = tasks.Create(ctx, &domain.Task{Title: "in a", UserID: 7, ProjectID: a.ID})
	_, _ = tasks.Create(ctx, &domain.Task{Title: "in b", UserID: 7, ProjectID: b.ID})

	got, err := svc.List(ctx, 7, &a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "in a" {
		t.Errorf("expected only project a's task, got %+v", got)
	}

	all, err := svc.List(ctx, 7, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both tasks without a project filter, got %d", len(all))
	}
}

func TestTaskService_List_ForeignProjectForbidden(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)

	foreign := seedProject(projects, 8, "not yours")
	_, err := svc.List(context.Background(), 7, &foreign.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestTaskService_Delete_Success(t *testing.T) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	svc, _ := newTaskService(projects, tasks)
	task := seedTask(projects, tasks, 7)
	ctx := context.Background()

	if err := svc.Delete(ctx, 7, task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := tasks.FindByID(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Error("task must be gone after delete")
	}
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	svc, _ := newTaskService(newStubProjectRepo(), newStubTaskRepo())

	err := svc.Delete(context.Background(), 7, 999)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
