package repository

import (
	"context"
	"fmt"

	"jobs-radius-api/internal/geo"
	"jobs-radius-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements job storage on PostgreSQL with PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const jobColumns = `
			id,
			title,
			description,
			status,
			ST_X(location::geometry) AS longitude,
			ST_Y(location::geometry) AS latitude,
			created_at`

// FindJobsWithinRadius returns jobs whose location lies within radiusMiles of (lat, lon), nearest first.
// An empty status matches every status.
func (r *Repository) FindJobsWithinRadius(ctx context.Context, lat, lon, radiusMiles float64, status string) ([]models.Job, error) {
	sql := `
		SELECT` + jobColumns + `
		FROM jobs
		WHERE location IS NOT NULL
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
			AND ($4::text = '' OR status = $4::text)
		ORDER BY location <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
	`

	rows, err := r.db.Query(ctx, sql, lat, lon, geo.MilesToMeters(radiusMiles), status)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachBids(ctx, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// ListJobs returns every job, newest first. An empty status matches every status.
func (r *Repository) ListJobs(ctx context.Context, status string) ([]models.Job, error) {
	sql := `
		SELECT` + jobColumns + `
		FROM jobs
		WHERE $1::text = '' OR status = $1::text
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(ctx, sql, status)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachBids(ctx, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

func collectJobs(rows pgx.Rows) ([]models.Job, error) {
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		var (
			job      models.Job
			lon, lat *float64
		)
		err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Description,
			&job.Status,
			&lon,
			&lat,
			&job.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan job: %w", err)
		}
		if lon != nil && lat != nil {
			job.Location = models.NewGeoPoint(*lat, *lon)
		}
		job.Bids = make([]models.Bid, 0)
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return jobs, nil
}

// attachBids loads the bids of all jobs in one query, each with its contractor summary.
func (r *Repository) attachBids(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(jobs))
	index := make(map[uuid.UUID]int, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
		index[job.ID] = i
	}

	sql := `
		SELECT
			b.id,
			b.job_id,
			b.amount,
			b.message,
			b.created_at,
			c.id,
			c.first_name,
			c.last_name
		FROM bids b
		LEFT JOIN contractors c ON c.id = b.contractor_id
		WHERE b.job_id = ANY($1::uuid[])
		ORDER BY b.created_at, b.id
	`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("repository: failed to execute bids query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bid          models.Bid
			jobID        uuid.UUID
			contractorID *uuid.UUID
			firstName    *string
			lastName     *string
		)
		err := rows.Scan(
			&bid.ID,
			&jobID,
			&bid.Amount,
			&bid.Message,
			&bid.CreatedAt,
			&contractorID,
			&firstName,
			&lastName,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to scan bid: %w", err)
		}

		if contractorID != nil {
			bid.ContractorID = &models.ContractorSummary{ID: *contractorID}
			if firstName != nil {
				bid.ContractorID.FirstName = *firstName
			}
			if lastName != nil {
				bid.ContractorID.LastName = *lastName
			}
		}

		i, ok := index[jobID]
		if !ok {
			continue
		}
		jobs[i].Bids = append(jobs[i].Bids, bid)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating bid rows: %w", err)
	}

	return nil
}
