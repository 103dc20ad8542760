package domain

import (
	"family-tasks/internal/gateway"
)

// TaskMapper handles conversion between domain and gateway Task models.
// The owner key decides which row column carries the owning identity.
type TaskMapper struct {
	ownerKey gateway.OwnerKey
}

// NewTaskMapper creates a new TaskMapper scoped to the given owner key.
func NewTaskMapper(ownerKey gateway.OwnerKey) *TaskMapper {
	return &TaskMapper{ownerKey: ownerKey}
}

// OwnerKey returns the owner column this mapper reads and writes.
func (m *TaskMapper) OwnerKey() gateway.OwnerKey {
	return m.ownerKey
}

// ToRow converts a domain Task to a gateway row.
func (m *TaskMapper) ToRow(task Task) *gateway.TaskRow {
	row := &gateway.TaskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		Category:    task.Category,
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	owner := task.OwnerID
	if m.ownerKey == gateway.OwnerKeyMember {
		row.MemberID = &owner
	} else {
		row.UserID = &owner
	}
	return row
}

// FromRow converts a gateway row to a domain Task.
func (m *TaskMapper) FromRow(row *gateway.TaskRow) Task {
	task := Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
		Priority:    Priority(row.Priority),
		DueDate:     row.DueDate,
		CompletedAt: row.CompletedAt,
		Category:    row.Category,
		Tags:        row.Tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if m.ownerKey == gateway.OwnerKeyMember {
		if row.MemberID != nil {
			task.OwnerID = *row.MemberID
		}
	} else if row.UserID != nil {
		task.OwnerID = *row.UserID
	}
	return task
}

// FromRows converts a slice of gateway rows to domain Tasks.
func (m *TaskMapper) FromRows(rows []*gateway.TaskRow) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromRow(row)
	}
	return tasks
}

// MemberMapper handles conversion between domain and gateway FamilyMember models.
type MemberMapper struct{}

// NewMemberMapper creates a new MemberMapper instance.
func NewMemberMapper() *MemberMapper {
	return &MemberMapper{}
}

// ToRow converts a domain FamilyMember to a gateway row.
func (m *MemberMapper) ToRow(member FamilyMember) *gateway.MemberRow {
	return &gateway.MemberRow{
		ID:        member.ID,
		ManagerID: member.ManagerID,
		Name:      member.Name,
		AvatarURL: member.AvatarURL,
		Color:     member.Color,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

// FromRow converts a gateway row to a domain FamilyMember.
func (m *MemberMapper) FromRow(row *gateway.MemberRow) FamilyMember {
	return FamilyMember{
		ID:        row.ID,
		ManagerID: row.ManagerID,
		Name:      row.Name,
		AvatarURL: row.AvatarURL,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// FromRows converts a slice of gateway rows to domain FamilyMembers.
func (m *MemberMapper) FromRows(rows []*gateway.MemberRow) []FamilyMember {
	members := make([]FamilyMember, len(rows))
	for i, row := range rows {
		members[i] = m.FromRow(row)
	}
	return members
}

// ProfileMapper handles conversion between domain and gateway Profile models.
type ProfileMapper struct{}

// NewProfileMapper creates a new ProfileMapper instance.
func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

// FromRow converts a gateway row to a domain Profile. The password hash
// stays in the gateway layer.
func (m *ProfileMapper) FromRow(row *gateway.ProfileRow) Profile {
	return Profile{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		AvatarURL: row.AvatarURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
