package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"family-tasks/internal/errors"
	"family-tasks/internal/gateway"
)

// HandleGatewayError converts database errors to structured app errors
func HandleGatewayError(operation string, err error) error {
	return errors.NewGatewayError(operation, err)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleGatewayError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleGatewayError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleGatewayError("scan "+entityType, err)
	}

	return results, nil
}

// BuildWhereClause renders equality and IN criteria into a WHERE clause
// and its arguments. Returns an empty string when there are no criteria.
func BuildWhereClause(q gateway.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	for _, f := range q.Equals {
		conditions = append(conditions, f.Field+" = ?")
		args = append(args, f.Value)
	}

	if q.In != nil && len(q.In.Values) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.In.Values)), ", ")
		conditions = append(conditions, fmt.Sprintf("%s IN (%s)", q.In.Field, placeholders))
		for _, v := range q.In.Values {
			args = append(args, v)
		}
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// BuildOrderClause renders an ordering criterion into an ORDER BY clause.
func BuildOrderClause(order *gateway.Order) string {
	if order == nil {
		return ""
	}
	direction := "DESC"
	if order.Ascending {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", order.Field, direction)
}

// BuildSetClause renders update fields into a SET clause and its
// arguments. Column order follows map iteration and is not stable.
func BuildSetClause(fields gateway.Fields) (string, []interface{}) {
	var assignments []string
	var args []interface{}

	for column, value := range fields {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}

	return strings.Join(assignments, ", "), args
}
