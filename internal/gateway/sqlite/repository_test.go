package sqlite

import (
	"context"
	"testing"
	"time"

	"family-tasks/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func strPtr(s string) *string {
	return &s
}

func insertTestTask(t *testing.T, repo *Repository, owner string, title string, completed bool) *gateway.TaskRow {
	t.Helper()

	row, err := repo.InsertTask(context.Background(), &gateway.TaskRow{
		UserID:    strPtr(owner),
		Title:     title,
		Completed: completed,
	})
	require.NoError(t, err)
	return row
}

func TestRepository_InsertTask(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	row, err := repo.InsertTask(ctx, &gateway.TaskRow{
		UserID:      strPtr("u1"),
		Title:       "Buy milk",
		Description: strPtr("2 liters"),
		DueDate:     &due,
		Category:    strPtr("errands"),
		Tags:        []string{"shopping", "food"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "medium", row.Priority, "priority should default to medium")
	assert.False(t, row.CreatedAt.IsZero())
	assert.False(t, row.UpdatedAt.IsZero())

	stored, err := repo.SelectTasks(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "user_id", Value: "u1"}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Buy milk", stored[0].Title)
	assert.Equal(t, "2 liters", *stored[0].Description)
	assert.Equal(t, []string{"shopping", "food"}, stored[0].Tags)
	assert.False(t, stored[0].Completed)
	assert.Nil(t, stored[0].CompletedAt)
	require.NotNil(t, stored[0].DueDate)
	assert.True(t, stored[0].DueDate.Equal(due))
}

func TestRepository_SelectTasksOrderAndFilters(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first := insertTestTask(t, repo, "u1", "first", false)
	second := insertTestTask(t, repo, "u1", "second", true)
	insertTestTask(t, repo, "u2", "other owner", false)

	// Force distinct creation times so ordering is observable.
	older := time.Now().Add(-time.Hour)
	require.NoError(t, repo.UpdateTasks(ctx,
		gateway.Fields{"created_at": older},
		[]gateway.Filter{{Field: "id", Value: first.ID}},
	))

	rows, err := repo.SelectTasks(ctx, gateway.Query{
		Equals:  []gateway.Filter{{Field: "user_id", Value: "u1"}},
		OrderBy: &gateway.Order{Field: "created_at", Ascending: false},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)

	// IN filter batches several owners in one fetch.
	inRows, err := repo.SelectTasks(ctx, gateway.Query{
		In: &gateway.InFilter{Field: "user_id", Values: []string{"u1", "u2"}},
	})
	require.NoError(t, err)
	assert.Len(t, inRows, 3)
}

func TestRepository_SelectTasksOrdersWithinSameSecond(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	// Back-to-back inserts land in the same wall-clock second.
	titles := []string{"t0", "t1", "t2", "t3", "t4"}
	for _, title := range titles {
		insertTestTask(t, repo, "u1", title, false)
	}

	rows, err := repo.SelectTasks(ctx, gateway.Query{
		Equals:  []gateway.Filter{{Field: "user_id", Value: "u1"}},
		OrderBy: &gateway.Order{Field: "created_at", Ascending: false},
	})
	require.NoError(t, err)
	require.Len(t, rows, len(titles))
	for i, row := range rows {
		assert.Equal(t, titles[len(titles)-1-i], row.Title, "position %d", i)
	}
}

func TestRepository_UpdateTasksWritesNulls(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour)
	row, err := repo.InsertTask(ctx, &gateway.TaskRow{
		UserID:      strPtr("u1"),
		Title:       "with extras",
		Description: strPtr("details"),
		DueDate:     &due,
		Tags:        []string{"a"},
	})
	require.NoError(t, err)

	err = repo.UpdateTasks(ctx, gateway.Fields{
		"title":       "bare",
		"description": nil,
		"due_date":    nil,
		"tags":        nil,
	}, []gateway.Filter{
		{Field: "id", Value: row.ID},
		{Field: "user_id", Value: "u1"},
	})
	require.NoError(t, err)

	stored, err := repo.SelectTasks(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "id", Value: row.ID}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "bare", stored[0].Title)
	assert.Nil(t, stored[0].Description, "omitted description should be written as NULL")
	assert.Nil(t, stored[0].DueDate)
	assert.Nil(t, stored[0].Tags)
	assert.True(t, stored[0].UpdatedAt.After(stored[0].CreatedAt) || stored[0].UpdatedAt.Equal(stored[0].CreatedAt))
}

func TestRepository_DeleteTasks(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	insertTestTask(t, repo, "u1", "done", true)
	keep := insertTestTask(t, repo, "u1", "open", false)

	err := repo.DeleteTasks(ctx, []gateway.Filter{
		{Field: "user_id", Value: "u1"},
		{Field: "completed", Value: "1"},
	})
	require.NoError(t, err)

	rows, err := repo.SelectTasks(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "user_id", Value: "u1"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].ID)
}

func TestRepository_SubscribeReceivesOwnerScopedEvents(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	sub := repo.Subscribe(gateway.TableTasks, []gateway.Filter{{Field: "user_id", Value: "u1"}})
	defer repo.Unsubscribe(sub)

	row := insertTestTask(t, repo, "u1", "watched", false)
	insertTestTask(t, repo, "u2", "unwatched", false)

	require.NoError(t, repo.UpdateTasks(ctx,
		gateway.Fields{"completed": true},
		[]gateway.Filter{{Field: "id", Value: row.ID}, {Field: "user_id", Value: "u1"}},
	))
	require.NoError(t, repo.DeleteTasks(ctx,
		[]gateway.Filter{{Field: "id", Value: row.ID}, {Field: "user_id", Value: "u1"}},
	))

	var types []gateway.EventType
	for len(sub.Events) > 0 {
		types = append(types, (<-sub.Events).Type)
	}
	assert.Equal(t, []gateway.EventType{gateway.EventInsert, gateway.EventUpdate, gateway.EventDelete}, types)
}

func TestRepository_MemberRoundTrip(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	row, err := repo.InsertMember(ctx, &gateway.MemberRow{
		ManagerID: "u1",
		Name:      "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "#3b82f6", row.Color, "color should default to the first palette entry")

	require.NoError(t, repo.UpdateMembers(ctx,
		gateway.Fields{"name": "Ana Maria", "color": "#ef4444"},
		[]gateway.Filter{{Field: "id", Value: row.ID}},
	))

	members, err := repo.SelectMembers(ctx, gateway.Query{
		Equals:  []gateway.Filter{{Field: "manager_id", Value: "u1"}},
		OrderBy: &gateway.Order{Field: "created_at", Ascending: true},
	})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ana Maria", members[0].Name)
	assert.Equal(t, "#ef4444", members[0].Color)

	require.NoError(t, repo.DeleteMembers(ctx, []gateway.Filter{{Field: "id", Value: row.ID}}))
	members, err = repo.SelectMembers(ctx, gateway.Query{
		Equals: []gateway.Filter{{Field: "manager_id", Value: "u1"}},
	})
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRepository_ProfileUniqueEmail(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.InsertProfile(ctx, &gateway.ProfileRow{
		Email:        "ana@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	_, err = repo.InsertProfile(ctx, &gateway.ProfileRow{
		Email:        "ana@example.com",
		PasswordHash: "other",
	})
	assert.Error(t, err, "duplicate email should be rejected by the unique constraint")
}
