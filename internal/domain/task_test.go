package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, Priority("bogus").Rank(), PriorityLow.Rank())
}

func TestTask_IsValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid open task",
			task:     Task{Title: "Buy milk", Priority: PriorityMedium},
			expected: true,
		},
		{
			name: "valid completed task with timestamp",
			task: Task{
				Title:       "Buy milk",
				Priority:    PriorityHigh,
				Completed:   true,
				CompletedAt: timePtr(now),
			},
			expected: true,
		},
		{
			name:     "invalid with empty title",
			task:     Task{Title: "", Priority: PriorityMedium},
			expected: false,
		},
		{
			name:     "invalid with unknown priority",
			task:     Task{Title: "Buy milk", Priority: Priority("urgent")},
			expected: false,
		},
		{
			name:     "invalid completed without timestamp",
			task:     Task{Title: "Buy milk", Priority: PriorityLow, Completed: true},
			expected: false,
		},
		{
			name: "invalid open with leftover timestamp",
			task: Task{
				Title:       "Buy milk",
				Priority:    PriorityLow,
				CompletedAt: timePtr(now),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_OverdueAndDueToday(t *testing.T) {
	// Fixed evaluation instant: 14:00 local time.
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name         string
		task         Task
		wantOverdue  bool
		wantDueToday bool
	}{
		{
			name: "due earlier today is pending today, not overdue",
			task: Task{
				Title:   "Morning call",
				DueDate: timePtr(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
			},
			wantOverdue:  false,
			wantDueToday: true,
		},
		{
			name: "due later today is pending today",
			task: Task{
				Title:   "Evening call",
				DueDate: timePtr(time.Date(2026, 3, 10, 21, 0, 0, 0, time.Local)),
			},
			wantOverdue:  false,
			wantDueToday: true,
		},
		{
			name: "due yesterday is overdue, not pending today",
			task: Task{
				Title:   "Missed",
				DueDate: timePtr(time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)),
			},
			wantOverdue:  true,
			wantDueToday: false,
		},
		{
			name: "due tomorrow is neither",
			task: Task{
				Title:   "Future",
				DueDate: timePtr(time.Date(2026, 3, 11, 0, 30, 0, 0, time.Local)),
			},
			wantOverdue:  false,
			wantDueToday: false,
		},
		{
			name: "completed task due yesterday is not overdue",
			task: Task{
				Title:       "Done late",
				Completed:   true,
				CompletedAt: timePtr(now),
				DueDate:     timePtr(time.Date(2026, 3, 8, 9, 0, 0, 0, time.Local)),
			},
			wantOverdue:  false,
			wantDueToday: false,
		},
		{
			name:         "task without due date is neither",
			task:         Task{Title: "Whenever"},
			wantOverdue:  false,
			wantDueToday: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOverdue, tt.task.IsOverdue(now))
			assert.Equal(t, tt.wantDueToday, tt.task.IsDueToday(now))
		})
	}
}
