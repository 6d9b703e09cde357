package server

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the collection tables
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	migrations := []string{
		migrationUsers,
		migrationProjects,
		migrationTaskLists,
		migrationTasks,
		migrationQuotes,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

const migrationUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    position BIGINT NOT NULL
);
`

const migrationProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    position BIGINT NOT NULL
);
`

const migrationTaskLists = `
CREATE TABLE IF NOT EXISTS task_lists (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    position BIGINT NOT NULL
);
`

const migrationTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    position BIGINT NOT NULL
);
`

const migrationQuotes = `
CREATE TABLE IF NOT EXISTS quotes (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    position BIGINT NOT NULL
);
`
