package sqlite

import (
	"database/sql"
	"time"

	"family-tasks/internal/gateway"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTaskRow scans a single task row from a database row
func ScanTaskRow(scanner Scanner) (*gateway.TaskRow, error) {
	row := &gateway.TaskRow{}
	var (
		userID      sql.NullString
		memberID    sql.NullString
		description sql.NullString
		completed   int
		dueDate     sql.NullString
		completedAt sql.NullString
		category    sql.NullString
		tags        sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&row.ID,
		&userID,
		&memberID,
		&row.Title,
		&description,
		&completed,
		&row.Priority,
		&dueDate,
		&completedAt,
		&category,
		&tags,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	row.Completed = completed != 0
	row.UserID = nullableString(userID)
	row.MemberID = nullableString(memberID)
	row.Description = nullableString(description)
	row.Category = nullableString(category)

	if tags.Valid {
		row.Tags = ParseTagsFromDB(tags.String)
	}
	if row.DueDate, err = nullableTime(dueDate); err != nil {
		return nil, err
	}
	if row.CompletedAt, err = nullableTime(completedAt); err != nil {
		return nil, err
	}
	if row.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if row.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return row, nil
}

// ScanTaskRows scans multiple task rows from database rows
func ScanTaskRows(rows Rows) ([]*gateway.TaskRow, error) {
	var result []*gateway.TaskRow
	for rows.Next() {
		row, err := ScanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ScanMemberRow scans a single family member row from a database row
func ScanMemberRow(scanner Scanner) (*gateway.MemberRow, error) {
	row := &gateway.MemberRow{}
	var (
		avatarURL sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&row.ID,
		&row.ManagerID,
		&row.Name,
		&avatarURL,
		&row.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	row.AvatarURL = nullableString(avatarURL)
	if row.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if row.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return row, nil
}

// ScanMemberRows scans multiple family member rows from database rows
func ScanMemberRows(rows Rows) ([]*gateway.MemberRow, error) {
	var result []*gateway.MemberRow
	for rows.Next() {
		row, err := ScanMemberRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ScanProfileRow scans a single profile row from a database row
func ScanProfileRow(scanner Scanner) (*gateway.ProfileRow, error) {
	row := &gateway.ProfileRow{}
	var (
		fullName  sql.NullString
		avatarURL sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&row.ID,
		&row.Email,
		&fullName,
		&avatarURL,
		&row.PasswordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	row.FullName = nullableString(fullName)
	row.AvatarURL = nullableString(avatarURL)
	if row.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if row.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return row, nil
}

// ScanProfileRows scans multiple profile rows from database rows
func ScanProfileRows(rows Rows) ([]*gateway.ProfileRow, error) {
	var result []*gateway.ProfileRow
	for rows.Next() {
		row, err := ScanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	value := s.String
	return &value
}

func nullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	parsed, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
