package sqlite

import (
	"context"
	"database/sql"
	"time"

	"family-tasks/internal/errors"
	"family-tasks/internal/gateway"
	"family-tasks/internal/gateway/sqlite/migrations"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	taskColumns    = "id, user_id, member_id, title, description, completed, priority, due_date, completed_at, category, tags, created_at, updated_at"
	memberColumns  = "id, manager_id, name, avatar_url, color, created_at, updated_at"
	profileColumns = "id, email, full_name, avatar_url, password_hash, created_at, updated_at"
)

// Repository implements gateway.Gateway on a local SQLite database.
// Every successful mutation publishes a change event through the hub,
// which backs the gateway's subscription contract.
type Repository struct {
	db  *sql.DB
	hub *gateway.Hub
}

// New creates a new SQLite-backed gateway instance
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewGatewayError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewGatewayError("run migrations", err)
	}

	return &Repository{db: db, hub: gateway.NewHub()}, nil
}

// Close closes the database connection and drops all subscriptions
func (r *Repository) Close() error {
	r.hub.Close()
	return r.db.Close()
}

// SelectTasks retrieves task rows matching the query
func (r *Repository) SelectTasks(ctx context.Context, q gateway.Query) ([]*gateway.TaskRow, error) {
	query := "SELECT " + taskColumns + " FROM tasks"
	where, args := BuildWhereClause(q)
	query += where + BuildOrderClause(q.OrderBy)

	return QueryMultiple(ctx, r.db, query, ScanTaskRows, "tasks", args...)
}

// InsertTask inserts a new task row, assigning id and timestamps when absent
func (r *Repository) InsertTask(ctx context.Context, row *gateway.TaskRow) (*gateway.TaskRow, error) {
	prepared := *row
	stampRow(&prepared.ID, &prepared.CreatedAt, &prepared.UpdatedAt)
	if prepared.Priority == "" {
		prepared.Priority = "medium"
	}

	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		prepared.ID,
		nullableArg(prepared.UserID),
		nullableArg(prepared.MemberID),
		prepared.Title,
		nullableArg(prepared.Description),
		boolToInt(prepared.Completed),
		prepared.Priority,
		FormatTimePtrForDB(prepared.DueDate),
		FormatTimePtrForDB(prepared.CompletedAt),
		nullableArg(prepared.Category),
		FormatTagsForDB(prepared.Tags),
		FormatTimeForDB(prepared.CreatedAt),
		FormatTimeForDB(prepared.UpdatedAt),
	)
	if err != nil {
		return nil, HandleGatewayError("insert task", err)
	}

	fields := map[string]string{"id": prepared.ID}
	if prepared.UserID != nil {
		fields["user_id"] = *prepared.UserID
	}
	if prepared.MemberID != nil {
		fields["member_id"] = *prepared.MemberID
	}
	r.hub.Publish(gateway.Event{Table: gateway.TableTasks, Type: gateway.EventInsert, Fields: fields})

	return &prepared, nil
}

// UpdateTasks applies the fields to every task row matching the filters
func (r *Repository) UpdateTasks(ctx context.Context, fields gateway.Fields, equals []gateway.Filter) error {
	return r.update(ctx, "tasks", gateway.TableTasks, fields, equals)
}

// DeleteTasks removes every task row matching the filters
func (r *Repository) DeleteTasks(ctx context.Context, equals []gateway.Filter) error {
	return r.delete(ctx, "tasks", gateway.TableTasks, equals)
}

// SelectMembers retrieves family member rows matching the query
func (r *Repository) SelectMembers(ctx context.Context, q gateway.Query) ([]*gateway.MemberRow, error) {
	query := "SELECT " + memberColumns + " FROM family_members"
	where, args := BuildWhereClause(q)
	query += where + BuildOrderClause(q.OrderBy)

	return QueryMultiple(ctx, r.db, query, ScanMemberRows, "family members", args...)
}

// InsertMember inserts a new family member row, assigning id and timestamps when absent
func (r *Repository) InsertMember(ctx context.Context, row *gateway.MemberRow) (*gateway.MemberRow, error) {
	prepared := *row
	stampRow(&prepared.ID, &prepared.CreatedAt, &prepared.UpdatedAt)
	if prepared.Color == "" {
		prepared.Color = "#3b82f6"
	}

	query := `
	INSERT INTO family_members (` + memberColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		prepared.ID,
		prepared.ManagerID,
		prepared.Name,
		nullableArg(prepared.AvatarURL),
		prepared.Color,
		FormatTimeForDB(prepared.CreatedAt),
		FormatTimeForDB(prepared.UpdatedAt),
	)
	if err != nil {
		return nil, HandleGatewayError("insert family member", err)
	}

	r.hub.Publish(gateway.Event{
		Table:  gateway.TableFamilyMembers,
		Type:   gateway.EventInsert,
		Fields: map[string]string{"id": prepared.ID, "manager_id": prepared.ManagerID},
	})

	return &prepared, nil
}

// UpdateMembers applies the fields to every family member row matching the filters
func (r *Repository) UpdateMembers(ctx context.Context, fields gateway.Fields, equals []gateway.Filter) error {
	return r.update(ctx, "family_members", gateway.TableFamilyMembers, fields, equals)
}

// DeleteMembers removes every family member row matching the filters
func (r *Repository) DeleteMembers(ctx context.Context, equals []gateway.Filter) error {
	return r.delete(ctx, "family_members", gateway.TableFamilyMembers, equals)
}

// SelectProfiles retrieves profile rows matching the query
func (r *Repository) SelectProfiles(ctx context.Context, q gateway.Query) ([]*gateway.ProfileRow, error) {
	query := "SELECT " + profileColumns + " FROM profiles"
	where, args := BuildWhereClause(q)
	query += where + BuildOrderClause(q.OrderBy)

	return QueryMultiple(ctx, r.db, query, ScanProfileRows, "profiles", args...)
}

// InsertProfile inserts a new profile row, assigning id and timestamps when absent
func (r *Repository) InsertProfile(ctx context.Context, row *gateway.ProfileRow) (*gateway.ProfileRow, error) {
	prepared := *row
	stampRow(&prepared.ID, &prepared.CreatedAt, &prepared.UpdatedAt)

	query := `
	INSERT INTO profiles (` + profileColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		prepared.ID,
		prepared.Email,
		nullableArg(prepared.FullName),
		nullableArg(prepared.AvatarURL),
		prepared.PasswordHash,
		FormatTimeForDB(prepared.CreatedAt),
		FormatTimeForDB(prepared.UpdatedAt),
	)
	if err != nil {
		return nil, HandleGatewayError("insert profile", err)
	}

	r.hub.Publish(gateway.Event{
		Table:  gateway.TableProfiles,
		Type:   gateway.EventInsert,
		Fields: map[string]string{"id": prepared.ID},
	})

	return &prepared, nil
}

// UpdateProfiles applies the fields to every profile row matching the filters
func (r *Repository) UpdateProfiles(ctx context.Context, fields gateway.Fields, equals []gateway.Filter) error {
	return r.update(ctx, "profiles", gateway.TableProfiles, fields, equals)
}

// Subscribe registers for change notifications on the given table
func (r *Repository) Subscribe(table gateway.Table, equals []gateway.Filter) *gateway.Subscription {
	return r.hub.Subscribe(table, equals)
}

// Unsubscribe releases a subscription obtained from Subscribe
func (r *Repository) Unsubscribe(sub *gateway.Subscription) {
	r.hub.Unsubscribe(sub)
}

func (r *Repository) update(ctx context.Context, sqlTable string, table gateway.Table, fields gateway.Fields, equals []gateway.Filter) error {
	if len(fields) == 0 {
		return nil
	}

	prepared := gateway.Fields{}
	for column, value := range fields {
		prepared[column] = normalizeArg(value)
	}
	prepared["updated_at"] = FormatTimeForDB(time.Now())

	set, args := BuildSetClause(prepared)
	where, whereArgs := BuildWhereClause(gateway.Query{Equals: equals})
	args = append(args, whereArgs...)

	result, err := r.db.ExecContext(ctx, "UPDATE "+sqlTable+" SET "+set+where, args...)
	if err != nil {
		return HandleGatewayError("update "+sqlTable, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		r.hub.Publish(gateway.Event{Table: table, Type: gateway.EventUpdate, Fields: filterFields(equals)})
	}
	return nil
}

func (r *Repository) delete(ctx context.Context, sqlTable string, table gateway.Table, equals []gateway.Filter) error {
	where, args := BuildWhereClause(gateway.Query{Equals: equals})

	result, err := r.db.ExecContext(ctx, "DELETE FROM "+sqlTable+where, args...)
	if err != nil {
		return HandleGatewayError("delete from "+sqlTable, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		r.hub.Publish(gateway.Event{Table: table, Type: gateway.EventDelete, Fields: filterFields(equals)})
	}
	return nil
}

// stampRow fills in the identifier and timestamps for a fresh row.
func stampRow(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// filterFields projects equality filters into event fields so the hub
// can match owner-scoped subscriptions.
func filterFields(equals []gateway.Filter) map[string]string {
	fields := make(map[string]string, len(equals))
	for _, f := range equals {
		fields[f.Field] = f.Value
	}
	return fields
}

func nullableArg(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// normalizeArg converts gateway field values into driver-friendly arguments.
func normalizeArg(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return boolToInt(v)
	case time.Time:
		return FormatTimeForDB(v)
	case *time.Time:
		return FormatTimePtrForDB(v)
	case []string:
		return FormatTagsForDB(v)
	case *string:
		return nullableArg(v)
	default:
		return v
	}
}
