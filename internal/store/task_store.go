package store

import (
	"context"
	"sync"
	"time"

	"family-tasks/internal/domain"
	"family-tasks/internal/errors"
	"family-tasks/internal/gateway"
	"family-tasks/internal/logging"
	"family-tasks/internal/validation"
)

// TaskStore holds the task collection for one owner and keeps it current:
// every successful mutation triggers a full reload, and gateway change
// notifications scoped to the owner do the same. Reads never touch the
// gateway.
type TaskStore struct {
	mu         sync.RWMutex
	gw         gateway.Gateway
	mapper     *domain.TaskMapper
	validator  *validation.TaskValidator
	ownerID    string
	tasks      []domain.Task
	loaded     bool
	closed     bool
	generation int
	sub        *gateway.Subscription
}

// NewTaskStore creates a store for tasks scoped by ownerKey to ownerID.
// Call Load to populate it and Start to follow the change feed.
func NewTaskStore(gw gateway.Gateway, ownerKey gateway.OwnerKey, ownerID string) *TaskStore {
	return &TaskStore{
		gw:        gw,
		mapper:    domain.NewTaskMapper(ownerKey),
		validator: validation.NewTaskValidator(),
		ownerID:   ownerID,
	}
}

// ownerFilter builds the owner equality filter. Callers hold s.mu.
func (s *TaskStore) ownerFilter() []gateway.Filter {
	return []gateway.Filter{{Field: string(s.mapper.OwnerKey()), Value: s.ownerID}}
}

func (s *TaskStore) scopedFilters(extra ...gateway.Filter) []gateway.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(s.ownerFilter(), extra...)
}

// OwnerID returns the owner the store is currently scoped to.
func (s *TaskStore) OwnerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID
}

// Load fetches the owner's tasks, newest first. A gateway failure is
// logged and leaves the store loaded but empty rather than surfacing an
// error. Results from a load that raced a Close or owner change are
// dropped.
func (s *TaskStore) Load(ctx context.Context) {
	s.mu.RLock()
	generation := s.generation
	filters := s.ownerFilter()
	s.mu.RUnlock()

	rows, err := s.gw.SelectTasks(ctx, gateway.Query{
		Equals:  filters,
		OrderBy: &gateway.Order{Field: "created_at", Ascending: false},
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generation != generation {
		logging.Debugln("task store: dropping stale load result")
		return
	}

	if err != nil {
		logging.Debugf("task store: load failed: %v\n", err)
		s.tasks = nil
		s.loaded = true
		return
	}

	s.tasks = s.mapper.FromRows(rows)
	s.loaded = true
}

// Loaded reports whether an initial load has completed.
func (s *TaskStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Tasks returns a copy of the current task collection.
func (s *TaskStore) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// FilteredTasks derives the visible list: completion filter, search and
// ordering applied to the in-memory collection.
func (s *TaskStore) FilteredTasks(filter domain.Filter, sortBy domain.Sort, search string) []domain.Task {
	return domain.ApplyView(s.Tasks(), filter, sortBy, search)
}

// Statistics computes aggregate counts over the in-memory collection.
func (s *TaskStore) Statistics(now time.Time) domain.TaskStatistics {
	return domain.ComputeStatistics(s.Tasks(), now)
}

// Find returns the task with the given id from the in-memory collection.
func (s *TaskStore) Find(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Add creates a task for the owner. Validation and gateway errors
// propagate; on success the collection is reloaded.
func (s *TaskStore) Add(ctx context.Context, input domain.TaskInput) error {
	title, err := s.validator.GetValidTitle(input.Title)
	if err != nil {
		return err
	}
	input.Title = title
	if err := s.validator.ValidateTaskInput(input); err != nil {
		return err
	}

	task := domain.Task{
		OwnerID:     s.OwnerID(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Category:    input.Category,
		Tags:        input.Tags,
	}

	if _, err := s.gw.InsertTask(ctx, s.mapper.ToRow(task)); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Update replaces the full mutable field set of a task. Optional fields
// left unsupplied are persisted as absent, not kept.
func (s *TaskStore) Update(ctx context.Context, id string, update domain.TaskUpdate) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return err
	}
	title, err := s.validator.GetValidTitle(update.Title)
	if err != nil {
		return err
	}
	if update.Priority != "" && !update.Priority.IsValid() {
		return errors.NewInvalidInputError("priority", update.Priority, "must be low, medium or high")
	}

	fields := gateway.Fields{
		"title":        title,
		"description":  nullableString(update.Description),
		"priority":     string(update.Priority),
		"due_date":     nullableTime(update.DueDate),
		"category":     nullableString(update.Category),
		"tags":         update.Tags,
		"completed":    update.Completed,
		"completed_at": nullableTime(update.CompletedAt),
	}

	filters := s.scopedFilters(gateway.Filter{Field: "id", Value: id})
	if err := s.gw.UpdateTasks(ctx, fields, filters); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Toggle flips the completion state of a task, stamping or clearing its
// completion time. An id not present in the collection is a no-op.
func (s *TaskStore) Toggle(ctx context.Context, id string, now time.Time) error {
	task, ok := s.Find(id)
	if !ok {
		return nil
	}

	fields := gateway.Fields{
		"completed":    !task.Completed,
		"completed_at": nil,
	}
	if !task.Completed {
		fields["completed_at"] = now
	}

	filters := s.scopedFilters(gateway.Filter{Field: "id", Value: id})
	if err := s.gw.UpdateTasks(ctx, fields, filters); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Remove deletes a task by id.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return err
	}

	filters := s.scopedFilters(gateway.Filter{Field: "id", Value: id})
	if err := s.gw.DeleteTasks(ctx, filters); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// ClearCompleted deletes every completed task of the owner.
func (s *TaskStore) ClearCompleted(ctx context.Context) error {
	filters := s.scopedFilters(gateway.Filter{Field: "completed", Value: "1"})
	if err := s.gw.DeleteTasks(ctx, filters); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Start subscribes to the gateway change feed for the owner's tasks. Any
// notification triggers a full reload. Calling Start on a started store
// replaces the previous subscription.
func (s *TaskStore) Start() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.teardownLocked()

	sub := s.gw.Subscribe(gateway.TableTasks, s.ownerFilter())
	s.sub = sub
	s.mu.Unlock()

	go func() {
		for range sub.Events {
			s.Load(context.Background())
		}
	}()
}

// SetOwner rebinds the store to a different owner: the old subscription
// is torn down, the collection cleared, and in-flight loads for the old
// owner invalidated. Call Load and Start again for the new owner.
func (s *TaskStore) SetOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || ownerID == s.ownerID {
		return
	}

	s.teardownLocked()
	s.ownerID = ownerID
	s.tasks = nil
	s.loaded = false
	s.generation++
}

// Close tears down the subscription and invalidates in-flight loads.
func (s *TaskStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.teardownLocked()
	s.closed = true
	s.generation++
}

// teardownLocked releases the current subscription. Callers hold s.mu.
func (s *TaskStore) teardownLocked() {
	if s.sub != nil {
		s.gw.Unsubscribe(s.sub)
		s.sub = nil
	}
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
