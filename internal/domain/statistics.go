package domain

import (
	"time"
)

// TaskStatistics are aggregate counts over a task collection snapshot.
type TaskStatistics struct {
	Total              int                `json:"total"`
	Completed          int                `json:"completed"`
	Pending            int                `json:"pending"`
	CompletedToday     int                `json:"completed_today"`
	CompletedThisWeek  int                `json:"completed_this_week"`
	CompletedThisMonth int                `json:"completed_this_month"`
	CompletionRate     float64            `json:"completion_rate"`
	// AverageCompletionTime is in minutes; nil when nothing has been completed.
	AverageCompletionTime *float64         `json:"average_completion_time,omitempty"`
	ByPriority            PriorityCounts   `json:"by_priority"`
	ByCategory            map[string]int   `json:"by_category"`
}

// PriorityCounts holds per-priority counts of incomplete tasks.
type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ComputeStatistics aggregates the task collection using calendar
// boundaries relative to now: today is the local calendar day, the week
// starts on Monday and the month on the 1st.
func ComputeStatistics(tasks []Task, now time.Time) TaskStatistics {
	todayStart := StartOfDay(now)
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)

	stats := TaskStatistics{
		Total:      len(tasks),
		ByCategory: make(map[string]int),
	}

	var completionMinutes float64
	var completionSamples int

	for _, task := range tasks {
		if task.Category != nil && *task.Category != "" {
			stats.ByCategory[*task.Category]++
		}

		if !task.Completed {
			stats.Pending++
			switch task.Priority {
			case PriorityLow:
				stats.ByPriority.Low++
			case PriorityMedium:
				stats.ByPriority.Medium++
			case PriorityHigh:
				stats.ByPriority.High++
			}
			continue
		}

		stats.Completed++
		if task.CompletedAt == nil {
			continue
		}

		completedAt := *task.CompletedAt
		if !completedAt.Before(todayStart) {
			stats.CompletedToday++
		}
		if !completedAt.Before(weekStart) {
			stats.CompletedThisWeek++
		}
		if !completedAt.Before(monthStart) {
			stats.CompletedThisMonth++
		}

		completionMinutes += completedAt.Sub(task.CreatedAt).Minutes()
		completionSamples++
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	if completionSamples > 0 {
		average := completionMinutes / float64(completionSamples)
		stats.AverageCompletionTime = &average
	}

	return stats
}

// MemberStats are per-member task counts derived by joining the member
// roster with task rows on the member reference.
type MemberStats struct {
	MemberID       string  `json:"member_id"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	PendingToday   int     `json:"pending_today"`
	OverdueTasks   int     `json:"overdue_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// ComputeMemberStats partitions tasks by owner id and aggregates per
// member. Every id in memberIDs gets an entry, even with no tasks.
// The second return value is the id of the member with the strictly
// greatest completed count; ties keep the first encountered member, and
// the id is empty when no member has completed anything.
func ComputeMemberStats(memberIDs []string, tasks []Task, now time.Time) (map[string]MemberStats, string) {
	byMember := make(map[string][]Task, len(memberIDs))
	for _, task := range tasks {
		byMember[task.OwnerID] = append(byMember[task.OwnerID], task)
	}

	stats := make(map[string]MemberStats, len(memberIDs))
	topMemberID := ""
	maxCompleted := 0

	for _, memberID := range memberIDs {
		memberTasks := byMember[memberID]

		entry := MemberStats{
			MemberID:   memberID,
			TotalTasks: len(memberTasks),
		}

		for _, task := range memberTasks {
			if task.Completed {
				entry.CompletedTasks++
				continue
			}
			if task.IsDueToday(now) {
				entry.PendingToday++
			}
			if task.IsOverdue(now) {
				entry.OverdueTasks++
			}
		}

		entry.PendingTasks = entry.TotalTasks - entry.CompletedTasks
		if entry.TotalTasks > 0 {
			entry.CompletionRate = float64(entry.CompletedTasks) / float64(entry.TotalTasks) * 100
		}

		stats[memberID] = entry

		if entry.CompletedTasks > maxCompleted {
			maxCompleted = entry.CompletedTasks
			topMemberID = memberID
		}
	}

	return stats, topMemberID
}
