package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// insertJobs queues one insert per job; geography values need PostGIS functions, which COPY cannot call.
func insertJobs(ctx context.Context, tx pgx.Tx, records []JobRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO jobs (id, title, description, status, location, created_at)
			VALUES (
				$1, $2, $3, $4,
				CASE WHEN $5::float8 IS NULL THEN NULL
					ELSE ST_SetSRID(ST_MakePoint($6::float8, $5::float8), 4326)::geography END,
				$7
			)`,
			r.ID, r.Title, r.Description, r.Status, r.Lat, r.Lon, r.CreatedAt,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// upsertContractors stores every contractor referenced by bids, keeping the last name seen for each id.
func upsertContractors(ctx context.Context, tx pgx.Tx, bids []BidRecord) error {
	seen := make(map[uuid.UUID]BidRecord)
	order := make([]uuid.UUID, 0)
	for _, b := range bids {
		if b.ContractorID == nil {
			continue
		}
		if _, ok := seen[*b.ContractorID]; !ok {
			order = append(order, *b.ContractorID)
		}
		seen[*b.ContractorID] = b
	}

	if len(order) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, id := range order {
		b := seen[id]
		batch.Queue(`
			INSERT INTO contractors (id, first_name, last_name) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name`,
			id, b.ContractorFirstName, b.ContractorLastName,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func insertBids(ctx context.Context, tx pgx.Tx, records []BidRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Use CopyFrom for bulk insert
	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"bids"},
		[]string{"id", "job_id", "contractor_id", "amount", "message"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.ID, r.JobID, r.ContractorID, r.Amount, r.Message}, nil
		}),
	)
	return err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, logger zerolog.Logger) error {
	var jobs, located, bids int
	err := conn.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE location IS NOT NULL),
			(SELECT COUNT(*) FROM bids)
	`).Scan(&jobs, &located, &bids)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	logger.Info().Int("jobs", jobs).Int("with_location", located).Int("bids", bids).Msg("table totals")
	return nil
}
