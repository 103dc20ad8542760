package domain

import (
	"testing"
	"time"

	"family-tasks/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskMapper_OwnerKeyRouting(t *testing.T) {
	task := Task{
		ID:       "t1",
		OwnerID:  "owner-1",
		Title:    "Buy milk",
		Priority: PriorityMedium,
	}

	userRow := NewTaskMapper(gateway.OwnerKeyUser).ToRow(task)
	require.NotNil(t, userRow.UserID)
	assert.Equal(t, "owner-1", *userRow.UserID)
	assert.Nil(t, userRow.MemberID)

	memberRow := NewTaskMapper(gateway.OwnerKeyMember).ToRow(task)
	require.NotNil(t, memberRow.MemberID)
	assert.Equal(t, "owner-1", *memberRow.MemberID)
	assert.Nil(t, memberRow.UserID)
}

func TestTaskMapper_RoundTrip(t *testing.T) {
	due := time.Now().Add(time.Hour)
	completedAt := time.Now()

	task := Task{
		ID:          "t1",
		OwnerID:     "m1",
		Title:       "Write report",
		Description: strPtr("quarterly numbers"),
		Completed:   true,
		Priority:    PriorityHigh,
		DueDate:     &due,
		CompletedAt: &completedAt,
		Category:    strPtr("work"),
		Tags:        []string{"report"},
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now(),
	}

	mapper := NewTaskMapper(gateway.OwnerKeyMember)
	assert.Equal(t, task, mapper.FromRow(mapper.ToRow(task)))
}

func TestTaskMapper_FromRowMissingOwner(t *testing.T) {
	mapper := NewTaskMapper(gateway.OwnerKeyMember)
	task := mapper.FromRow(&gateway.TaskRow{ID: "t1", Title: "orphan", Priority: "low"})
	assert.Empty(t, task.OwnerID)
}

func TestMemberMapper_RoundTrip(t *testing.T) {
	member := FamilyMember{
		ID:        "m1",
		ManagerID: "u1",
		Name:      "Ana",
		AvatarURL: strPtr("https://example.com/a.png"),
		Color:     "#ef4444",
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now(),
	}

	mapper := NewMemberMapper()
	assert.Equal(t, member, mapper.FromRow(mapper.ToRow(member)))
}

func TestProfileMapper_FromRowOmitsPasswordHash(t *testing.T) {
	row := &gateway.ProfileRow{
		ID:           "u1",
		Email:        "ana@example.com",
		PasswordHash: "secret-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	profile := NewProfileMapper().FromRow(row)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "ana@example.com", profile.Email)
}
