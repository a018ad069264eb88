package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"jobs-radius-api/internal/errs"
	"jobs-radius-api/internal/models"

	"github.com/gin-gonic/gin"
)

// JobsRadiusHandler handles jobs-in-radius requests
type JobsRadiusHandler struct {
	service JobSearchService
}

// JobSearchService interface for dependency injection
type JobSearchService interface {
	FindJobsInRadius(context.Context, models.RadiusQuery) ([]models.Job, error)
}

// NewJobsRadiusHandler creates a new jobs radius handler
func NewJobsRadiusHandler(svc JobSearchService) *JobsRadiusHandler {
	return &JobsRadiusHandler{service: svc}
}

// FindJobsInRadius handles GET /jobs/radius requests
//
//	@Summary		List jobs within a radius
//	@Description	Returns jobs whose location is within radius miles of the given point, nearest first.
//	@Tags			jobs
//	@Produce		json
//	@Param			latitude	query		number	true	"Latitude of the search center"
//	@Param			longitude	query		number	true	"Longitude of the search center"
//	@Param			radius		query		number	false	"Radius in miles (0-100)"	default(50)
//	@Param			includeAll	query		string	false	"\"true\" returns every status, anything else only open jobs"	default(true)
//	@Success		200			{array}		models.Job
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/jobs/radius [get]
func (h *JobsRadiusHandler) FindJobsInRadius(c *gin.Context) {
	query, err := parseRadiusQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.service.FindJobsInRadius(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func parseRadiusQuery(c *gin.Context) (models.RadiusQuery, error) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	if latStr == "" || lonStr == "" {
		return models.RadiusQuery{}, errs.NewBadRequestError("Latitude and longitude are required")
	}

	radiusStr := c.DefaultQuery("radius", strconv.FormatFloat(models.DefaultRadiusMiles, 'f', -1, 64))

	var query models.RadiusQuery
	for _, field := range []struct {
		raw string
		dst *float64
	}{
		{latStr, &query.Latitude},
		{lonStr, &query.Longitude},
		{radiusStr, &query.RadiusMiles},
	} {
		v, err := parseFinite(field.raw)
		if err != nil {
			return models.RadiusQuery{}, errs.NewBadRequestErrorWithCause("Invalid coordinate or radius values", err)
		}
		*field.dst = v
	}

	// Only the literal "true" widens the search to every status.
	query.IncludeAll = c.DefaultQuery("includeAll", "true") == "true"

	return query, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrRange}
	}
	return v, nil
}
