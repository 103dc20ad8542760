package domain

import (
	"sort"
	"strings"
)

// Filter narrows the visible task collection by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Sort orders the visible task collection.
type Sort string

const (
	SortByDate     Sort = "date" // Newest first (default)
	SortByPriority Sort = "priority"
	SortByTitle    Sort = "title"
)

// ApplyView derives the visible task list from the raw collection:
// completion filter, then case-insensitive substring search across
// title, description, category and tags, then ordering. The input
// slice is not modified.
func ApplyView(tasks []Task, filter Filter, sortBy Sort, search string) []Task {
	result := make([]Task, 0, len(tasks))

	for _, task := range tasks {
		if !matchesFilter(task, filter) {
			continue
		}
		if !matchesSearch(task, search) {
			continue
		}
		result = append(result, task)
	}

	sortTasks(result, sortBy)
	return result
}

func matchesFilter(task Task, filter Filter) bool {
	switch filter {
	case FilterCompleted:
		return task.Completed
	case FilterPending:
		return !task.Completed
	default:
		return true
	}
}

func matchesSearch(task Task, search string) bool {
	if search == "" {
		return true
	}
	query := strings.ToLower(search)

	if strings.Contains(strings.ToLower(task.Title), query) {
		return true
	}
	if task.Description != nil && strings.Contains(strings.ToLower(*task.Description), query) {
		return true
	}
	if task.Category != nil && strings.Contains(strings.ToLower(*task.Category), query) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortTasks(tasks []Task, sortBy Sort) {
	switch sortBy {
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	case SortByTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}
