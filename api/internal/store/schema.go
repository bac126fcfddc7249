package store

import (
	"context"
	"database/sql"
	"strings"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the cache DDL. Idempotent; the bot runs it on boot.
// Statements run one at a time: the pgx stdlib driver prepares every Exec,
// and the extended protocol takes a single command per statement.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
