package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	byID      map[int64]*domain.Project
	nextID    int64
	createErr error // if set, Create returns this error
	countErr  error // if set, CountByOwner returns this error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[int64]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *p
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) ListByOwner(_ context.Context, userID int64) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Update merges non-nil fields, mirroring the real Mongo $set document.
func (r *stubProjectRepo) Update(_ context.Context, id int64, upd ports.ProjectUpdate) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.DueDate != nil {
		p.DueDate = upd.DueDate
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubProjectRepo) CountByOwner(_ context.Context, userID int64) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, p := range r.byID {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

type stubTaskRepo struct {
	byID   map[int64]*domain.Task
	nextID int64
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[int64]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = r.nextID
	clone.CompletedAt = nil
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, userID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.ProjectID == projectID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Update merges non-nil fields, mirroring the real Mongo $set document.
// ClearCompletedAt wins over an untouched CompletedAt, like the $set to
// null in the real repo.
func (r *stubTaskRepo) Update(_ context.Context, id int64, upd ports.TaskUpdate) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	if upd.CompletedAt != nil {
		ts := *upd.CompletedAt
		t.CompletedAt = &ts
	} else if upd.ClearCompletedAt {
		t.CompletedAt = nil
	}
	if upd.ProjectID != nil {
		t.ProjectID = *upd.ProjectID
	}
	if upd.UserID != nil {
		t.UserID = *upd.UserID
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID int64) (int64, error) {
	var n int64
	for id, t := range r.byID {
		if t.ProjectID == projectID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type stubUserRepo struct {
	byID       map[int64]*domain.User
	byUsername map[string]int64
	nextID     int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, taken := r.byUsername[u.Username]; taken {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	r.byUsername[clone.Username] = clone.ID
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(context.Background(), id)
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.EmailNotifications != nil {
		u.EmailNotifications = *upd.EmailNotifications
	}
	if upd.DarkMode != nil {
		u.DarkMode = *upd.DarkMode
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	clone := *u
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Throttle and activity stubs
// ---------------------------------------------------------------------------

type stubThrottle struct {
	failures map[string]int
	checkErr error // if set, TooMany returns this error
	limit    int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: 5}
}

func (s *stubThrottle) TooMany(_ context.Context, username string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return s.failures[username] >= s.limit, nil
}

func (s *stubThrottle) RecordFailure(_ context.Context, username string) error {
	s.failures[username]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, username string) error {
	delete(s.failures, username)
	return nil
}

// captureRecorder collects recorded events for assertions.
type captureRecorder struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (c *captureRecorder) Record(event domain.ActivityEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureRecorder) all() []domain.ActivityEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ActivityEvent, len(c.events))
	copy(out, c.events)
	return out
}
