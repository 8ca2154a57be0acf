package engine

import (
	"context"
	"database/sql"
	"fmt"
)

// execSQL runs a statement against a database/sql handle. The rewrite
// function converts the %s placeholder tokens the workload suites author
// into the driver's native form.
func execSQL(ctx context.Context, db *sql.DB, rewrite func(string) string, query string, kind Kind, params Params) (*Result, error) {
	if db == nil {
		return nil, fmt.Errorf("not connected")
	}

	if len(params) > 0 {
		query = rewrite(query)
	}

	args := params.Positional()

	if kind == Read {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}

		defer func() { _ = rows.Close() }()

		collected, err := collectRows(rows)
		if err != nil {
			return nil, err
		}

		return &Result{Rows: collected}, nil
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report a count for DDL; treat as zero.
		affected = 0
	}

	return &Result{Affected: affected}, nil
}

func collectRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var collected []Row

	for rows.Next() {
		values := make([]any, len(columns))
		scan := make([]any, len(columns))

		for i := range values {
			scan[i] = &values[i]
		}

		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}

		collected = append(collected, row)
	}

	return collected, rows.Err()
}

// execScript runs a sequence of DDL statements, used by SetupSchema and
// Cleanup implementations.
func execScript(ctx context.Context, db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
