package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema when it does not exist yet. The store is three
// tables; a migration-file mechanism would be more machinery than schema.
func (db *DB) Migrate(ctx context.Context) error {
	pk := db.Dialect.AutoIncrementPK()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS questions (
			id %s,
			old_text TEXT,
			new_text TEXT,
			feedback TEXT NOT NULL DEFAULT '',
			updated BOOLEAN NOT NULL DEFAULT FALSE,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			assigned_to VARCHAR(255),
			difficulty VARCHAR(64),
			editor VARCHAR(255),
			import_batch VARCHAR(64)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS feedback_log (
			id %s,
			question_id BIGINT NOT NULL,
			author VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, pk),
	}

	for _, stmt := range statements {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}
