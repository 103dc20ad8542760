package store

import (
	"context"
	"testing"
	"time"

	"family-tasks/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertMemberTask(t *testing.T, gw gateway.Gateway, memberID, title string, completed bool) {
	t.Helper()

	row := &gateway.TaskRow{MemberID: &memberID, Title: title, Completed: completed}
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	}
	_, err := gw.InsertTask(context.Background(), row)
	require.NoError(t, err)
}

func TestMemberStatsAggregator_Refresh(t *testing.T) {
	gw := setupGateway(t)
	ctx := context.Background()

	ana, err := gw.InsertMember(ctx, &gateway.MemberRow{ManagerID: "u1", Name: "Ana"})
	require.NoError(t, err)
	ben, err := gw.InsertMember(ctx, &gateway.MemberRow{ManagerID: "u1", Name: "Ben"})
	require.NoError(t, err)

	insertMemberTask(t, gw, ana.ID, "Dishes", true)
	insertMemberTask(t, gw, ana.ID, "Laundry", true)
	insertMemberTask(t, gw, ana.ID, "Vacuum", false)
	insertMemberTask(t, gw, ben.ID, "Trash", true)

	agg := NewMemberStatsAggregator(gw, "u1")
	agg.Refresh(ctx, time.Now())

	require.True(t, agg.Loaded())
	stats := agg.Stats()
	require.Len(t, stats, 2)

	assert.Equal(t, 3, stats[ana.ID].TotalTasks)
	assert.Equal(t, 2, stats[ana.ID].CompletedTasks)
	assert.Equal(t, 1, stats[ana.ID].PendingTasks)
	assert.Equal(t, 1, stats[ben.ID].TotalTasks)

	assert.Equal(t, ana.ID, agg.TopMember())
}

func TestMemberStatsAggregator_MembersWithoutTasksGetEntries(t *testing.T) {
	gw := setupGateway(t)
	ctx := context.Background()

	member, err := gw.InsertMember(ctx, &gateway.MemberRow{ManagerID: "u1", Name: "Ana"})
	require.NoError(t, err)

	agg := NewMemberStatsAggregator(gw, "u1")
	agg.Refresh(ctx, time.Now())

	stats := agg.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[member.ID].TotalTasks)
	assert.Empty(t, agg.TopMember(), "no completed tasks means no top member")
}

func TestMemberStatsAggregator_EmptyRoster(t *testing.T) {
	gw := setupGateway(t)

	agg := NewMemberStatsAggregator(gw, "u1")
	agg.Refresh(context.Background(), time.Now())

	assert.True(t, agg.Loaded())
	assert.Empty(t, agg.Stats())
	assert.Empty(t, agg.TopMember())
}

func TestMemberStatsAggregator_FailureResetsStats(t *testing.T) {
	gw := setupGateway(t)
	ctx := context.Background()

	member, err := gw.InsertMember(ctx, &gateway.MemberRow{ManagerID: "u1", Name: "Ana"})
	require.NoError(t, err)
	insertMemberTask(t, gw, member.ID, "Dishes", true)

	agg := NewMemberStatsAggregator(gw, "u1")
	agg.Refresh(ctx, time.Now())
	require.NotEmpty(t, agg.Stats())

	agg.gw = failingGateway{}
	agg.Refresh(ctx, time.Now())

	assert.True(t, agg.Loaded())
	assert.Empty(t, agg.Stats())
	assert.Empty(t, agg.TopMember())
}
