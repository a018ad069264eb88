package service

import (
	"context"
	"fmt"

	"jobs-radius-api/internal/errs"
	"jobs-radius-api/internal/models"
)

// JobSearchService contains the business rules for radius searches over jobs
type JobSearchService struct {
	repo JobRadiusRepository
}

// JobRadiusRepository interface for dependency injection.
// Implemented by the PostGIS repository and by the in-process haversine search.
type JobRadiusRepository interface {
	FindJobsWithinRadius(ctx context.Context, lat, lon, radiusMiles float64, status string) ([]models.Job, error)
}

// NewJobSearchService creates a new job search service
func NewJobSearchService(repo JobRadiusRepository) *JobSearchService {
	return &JobSearchService{repo: repo}
}

// FindJobsInRadius returns the jobs within q.RadiusMiles of the query point.
// Unless q.IncludeAll is set only open jobs are returned.
func (s *JobSearchService) FindJobsInRadius(ctx context.Context, q models.RadiusQuery) ([]models.Job, error) {
	if q.RadiusMiles < 0 || q.RadiusMiles > models.MaxRadiusMiles {
		return nil, errs.NewBadRequestError("Radius must be between 0 and 100 miles")
	}
	if q.Latitude < -90 || q.Latitude > 90 {
		return nil, errs.NewBadRequestError("Latitude must be between -90 and 90")
	}
	if q.Longitude < -180 || q.Longitude > 180 {
		return nil, errs.NewBadRequestError("Longitude must be between -180 and 180")
	}

	status := ""
	if !q.IncludeAll {
		status = models.StatusOpen
	}

	jobs, err := s.repo.FindJobsWithinRadius(ctx, q.Latitude, q.Longitude, q.RadiusMiles, status)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find jobs in radius: %w", err)
	}

	return jobs, nil
}
