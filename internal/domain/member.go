package domain

import (
	"time"
)

// MemberColors is the fixed palette for family member display colors.
var MemberColors = []string{
	"#3b82f6",
	"#ef4444",
	"#10b981",
	"#f59e0b",
	"#8b5cf6",
	"#ec4899",
	"#06b6d4",
	"#f97316",
	"#14b8a6",
	"#a855f7",
}

// DefaultMemberColor is assigned when a member is created without a color.
const DefaultMemberColor = "#3b82f6"

// FamilyMember represents a profile a manager identity can act as.
// The manager identity is immutable after creation.
type FamilyMember struct {
	ID        string
	ManagerID string
	Name      string
	AvatarURL *string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid checks if the member has valid data.
func (m FamilyMember) IsValid() bool {
	return m.ManagerID != "" && m.Name != ""
}

// MemberInput carries the caller-supplied attributes for creating or
// updating a family member.
type MemberInput struct {
	Name      string
	AvatarURL *string
	Color     string
}
