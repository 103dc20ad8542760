package domain

import (
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort rank of the priority: high sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether the priority is one of the accepted levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents one actionable item in the domain model.
// This is a pure domain model without gateway-specific concerns.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Category    *string
	Tags        []string
}

// IsValid checks if the task has valid data. A completed task carries a
// completion timestamp and an open task does not.
func (t Task) IsValid() bool {
	if t.Title == "" {
		return false
	}
	if !t.Priority.IsValid() {
		return false
	}
	return t.Completed == (t.CompletedAt != nil)
}

// IsOverdue reports whether the task is incomplete and was due strictly
// before the start of the calendar day containing now. A task due earlier
// today is not overdue, only tasks due on a previous day are.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// IsDueToday reports whether the task is incomplete and due within the
// calendar day containing now.
func (t Task) IsDueToday(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	return !due.Before(StartOfDay(now)) && !due.After(EndOfDay(now))
}

// TaskInput carries the caller-supplied attributes for a new task.
type TaskInput struct {
	Title       string
	Description *string
	Priority    Priority
	DueDate     *time.Time
	Category    *string
	Tags        []string
}

// TaskUpdate carries the full set of mutable task fields for an update.
// Absent optional fields are persisted as absent, not left untouched.
type TaskUpdate struct {
	Title       string
	Description *string
	Priority    Priority
	DueDate     *time.Time
	Category    *string
	Tags        []string
	Completed   bool
	CompletedAt *time.Time
}
