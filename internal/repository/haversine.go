package repository

import (
	"context"
	"fmt"

	"jobs-radius-api/internal/geo"
	"jobs-radius-api/internal/models"
)

// JobLister loads jobs without any spatial filtering
type JobLister interface {
	ListJobs(ctx context.Context, status string) ([]models.Job, error)
}

// HaversineRepository answers radius searches by loading every candidate job
// and measuring the distance in process. It predates the PostGIS query in
// Repository.FindJobsWithinRadius and reads the whole table on every call.
type HaversineRepository struct {
	lister JobLister
}

// NewHaversineRepository creates a radius search over lister
func NewHaversineRepository(lister JobLister) *HaversineRepository {
	return &HaversineRepository{lister: lister}
}

// FindJobsWithinRadius returns the jobs within radiusMiles of (lat, lon). Jobs without a location are skipped.
func (r *HaversineRepository) FindJobsWithinRadius(ctx context.Context, lat, lon, radiusMiles float64, status string) ([]models.Job, error) {
	all, err := r.lister.ListJobs(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list jobs: %w", err)
	}

	center := geo.Coordinates{lon, lat}
	nearby := make([]models.Job, 0, len(all))
	for _, job := range all {
		if job.Location == nil {
			continue
		}
		if geo.Distance(center, geo.Coordinates(job.Location.Coordinates)) <= radiusMiles {
			nearby = append(nearby, job)
		}
	}

	return nearby, nil
}
