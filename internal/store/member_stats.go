package store

import (
	"context"
	"sync"
	"time"

	"family-tasks/internal/domain"
	"family-tasks/internal/gateway"
	"family-tasks/internal/logging"
)

// MemberStatsAggregator computes per-member task statistics for a
// manager's roster: one fetch for the member ids, one batched fetch for
// all of their tasks, partitioned in memory.
type MemberStatsAggregator struct {
	mu        sync.RWMutex
	gw        gateway.Gateway
	mapper    *domain.TaskMapper
	managerID string
	stats     map[string]domain.MemberStats
	topMember string
	loaded    bool
}

// NewMemberStatsAggregator creates an aggregator for the given manager.
func NewMemberStatsAggregator(gw gateway.Gateway, managerID string) *MemberStatsAggregator {
	return &MemberStatsAggregator{
		gw:        gw,
		mapper:    domain.NewTaskMapper(gateway.OwnerKeyMember),
		managerID: managerID,
		stats:     map[string]domain.MemberStats{},
	}
}

// Refresh recomputes the statistics. A gateway failure on either fetch
// resets the stats to empty and the top member to none, and is logged.
func (a *MemberStatsAggregator) Refresh(ctx context.Context, now time.Time) {
	memberRows, err := a.gw.SelectMembers(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "manager_id", Value: a.managerID}},
	})
	if err != nil {
		logging.Debugf("member stats: member fetch failed: %v\n", err)
		a.reset()
		return
	}

	memberIDs := make([]string, 0, len(memberRows))
	for _, row := range memberRows {
		memberIDs = append(memberIDs, row.ID)
	}

	var tasks []domain.Task
	if len(memberIDs) > 0 {
		taskRows, err := a.gw.SelectTasks(ctx, gateway.Query{
			In: &gateway.InFilter{Field: "member_id", Values: memberIDs},
		})
		if err != nil {
			logging.Debugf("member stats: task fetch failed: %v\n", err)
			a.reset()
			return
		}
		tasks = a.mapper.FromRows(taskRows)
	}

	stats, topMember := domain.ComputeMemberStats(memberIDs, tasks, now)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = stats
	a.topMember = topMember
	a.loaded = true
}

func (a *MemberStatsAggregator) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = map[string]domain.MemberStats{}
	a.topMember = ""
	a.loaded = true
}

// Loaded reports whether a refresh has completed.
func (a *MemberStatsAggregator) Loaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// Stats returns a copy of the per-member statistics.
func (a *MemberStatsAggregator) Stats() map[string]domain.MemberStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := make(map[string]domain.MemberStats, len(a.stats))
	for id, s := range a.stats {
		stats[id] = s
	}
	return stats
}

// TopMember returns the id of the member with the strictly greatest
// completed count, or empty when no member has completed a task.
func (a *MemberStatsAggregator) TopMember() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.topMember
}
