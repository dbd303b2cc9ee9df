package store

import (
	"context"
	"fmt"

	"github.com/Knetic/go-namedParameterQuery"
	"github.com/jmoiron/sqlx"
)

// conn is satisfied by *sqlx.DB and *sqlx.Tx.
type conn interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

func bind(query string, params map[string]any) (string, []any) {
	q := namedParameterQuery.NewNamedParameterQuery(query)
	q.SetValuesFromMap(params)
	return q.GetParsedQuery(), q.GetParsedParameters()
}

func QueryListNamed[T any](ctx context.Context, c conn, query string, params map[string]any) ([]T, error) {
	query, args := bind(query, params)
	rows, err := c.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var target []T
	for rows.Next() {
		var t T
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("struct scan: %w", err)
		}
		target = append(target, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return target, nil
}

func QueryNamedOne[T any](ctx context.Context, c conn, query string, params map[string]any) (T, error) {
	var target T
	query, args := bind(query, params)
	row := c.QueryRowxContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		return target, fmt.Errorf("query row: %w", err)
	}
	if err := row.StructScan(&target); err != nil {
		return target, fmt.Errorf("struct scan: %w", err)
	}
	return target, nil
}

// ExecNamed runs the statement and returns the number of affected rows.
func ExecNamed(ctx context.Context, c conn, query string, params map[string]any) (int64, error) {
	query, args := bind(query, params)
	res, err := c.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func ExecNamedLastId(ctx context.Context, c conn, query string, params map[string]any) (int64, error) {
	query, args := bind(query, params)
	res, err := c.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ExecContext: %w", err)
	}
	return res.LastInsertId()
}
