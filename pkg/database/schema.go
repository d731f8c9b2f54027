package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// RequiredTables are the tables the engine reads or writes.
var RequiredTables = []string{
	"org_bank_accounts",
	"org_bank_transactions",
	"org_bank_tx_signatures",
	"org_bank_daily_reports",
	"org_members",
	"org_role_permissions",
	"bank_officers",
}

// VerifySchema fails when any of tables is missing from the current schema.
func VerifySchema(ctx context.Context, db *sql.DB, tables []string) error {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()`)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating table names: %w", err)
	}

	var missing []string
	for _, t := range tables {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("database schema is missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}
