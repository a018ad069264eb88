// Package schema creates the tables and indexes the jobs API reads from.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// statements are applied in order; every one of them is idempotent.
var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'open',
		location GEOGRAPHY(POINT, 4326),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_location_idx ON jobs USING GIST (location)`,
	`CREATE INDEX IF NOT EXISTS jobs_status_idx ON jobs (status)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
		contractor_id UUID REFERENCES contractors (id) ON DELETE SET NULL,
		amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bids_job_id_idx ON bids (job_id)`,
}

// Open returns a database/sql handle backed by lib/pq.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("schema: failed to open database: %w", err)
	}
	return db, nil
}

// Apply creates the PostGIS extension, tables and indexes if they do not exist.
func Apply(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("schema: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return describe(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("schema: failed to commit: %w", err)
	}
	return nil
}

// describe adds the postgres condition name to errors reported by the server.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "42501" {
			return fmt.Errorf("schema: insufficient privilege (the postgis extension may need to be created by a superuser): %w", err)
		}
		return fmt.Errorf("schema: failed to apply statement (%s): %w", pqErr.Code.Name(), err)
	}
	return fmt.Errorf("schema: failed to apply statement: %w", err)
}
