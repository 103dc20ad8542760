package gateway

import (
	"context"
	"time"
)

// Table identifies a logical table exposed by the data gateway.
type Table string

const (
	TableTasks         Table = "tasks"
	TableFamilyMembers Table = "family_members"
	TableProfiles      Table = "profiles"
)

// OwnerKey is the column used to scope task rows to an identity.
// The single-user deployment scopes by user_id, the family deployment
// by member_id; both run against the same schema.
type OwnerKey string

const (
	OwnerKeyUser   OwnerKey = "user_id"
	OwnerKeyMember OwnerKey = "member_id"
)

// Filter is an equality condition on a single column.
type Filter struct {
	Field string
	Value string
}

// InFilter restricts a column to a set of values.
type InFilter struct {
	Field  string
	Values []string
}

// Order describes the ordering of a select.
type Order struct {
	Field     string
	Ascending bool
}

// Query carries the supported select criteria: equality filters, an
// optional IN filter and an optional ordering.
type Query struct {
	Equals  []Filter
	In      *InFilter
	OrderBy *Order
}

// Fields holds column values for an update. A nil value writes NULL,
// matching the full-replace semantics the stores rely on.
type Fields map[string]interface{}

// TaskRow is the task record as stored by the gateway.
type TaskRow struct {
	ID          string
	UserID      *string
	MemberID    *string
	Title       string
	Description *string
	Completed   bool
	Priority    string
	DueDate     *time.Time
	CompletedAt *time.Time
	Category    *string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberRow is the family member record as stored by the gateway.
type MemberRow struct {
	ID        string
	ManagerID string
	Name      string
	AvatarURL *string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRow is the authentication profile record as stored by the gateway.
type ProfileRow struct {
	ID           string
	Email        string
	FullName     *string
	AvatarURL    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Gateway is the narrow contract the stores consume. Implementations
// provide row CRUD per table plus change-notification subscriptions.
type Gateway interface {
	SelectTasks(ctx context.Context, q Query) ([]*TaskRow, error)
	InsertTask(ctx context.Context, row *TaskRow) (*TaskRow, error)
	UpdateTasks(ctx context.Context, fields Fields, equals []Filter) error
	DeleteTasks(ctx context.Context, equals []Filter) error

	SelectMembers(ctx context.Context, q Query) ([]*MemberRow, error)
	InsertMember(ctx context.Context, row *MemberRow) (*MemberRow, error)
	UpdateMembers(ctx context.Context, fields Fields, equals []Filter) error
	DeleteMembers(ctx context.Context, equals []Filter) error

	SelectProfiles(ctx context.Context, q Query) ([]*ProfileRow, error)
	InsertProfile(ctx context.Context, row *ProfileRow) (*ProfileRow, error)
	UpdateProfiles(ctx context.Context, fields Fields, equals []Filter) error

	// Subscribe registers for change notifications on a table. Only rows
	// matching every equality filter produce events. The returned
	// subscription must be released with Unsubscribe.
	Subscribe(table Table, equals []Filter) *Subscription
	Unsubscribe(sub *Subscription)

	Close() error
}
