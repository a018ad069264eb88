//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"jobs-radius-api/internal/models"
	"jobs-radius-api/internal/schema"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// San Francisco city hall.
const centerLat, centerLon = 37.7793, -122.4193

var (
	ferryJobID    = uuid.MustParse("00000000-0000-0000-0000-000000000001") // ~1.8 mi, open
	oaklandJobID  = uuid.MustParse("00000000-0000-0000-0000-000000000002") // ~8.3 mi, closed
	sacramentoID  = uuid.MustParse("00000000-0000-0000-0000-000000000003") // ~75 mi, open
	noLocationID  = uuid.MustParse("00000000-0000-0000-0000-000000000004") // open, no location
	contractorID  = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	contractorBid = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	orphanBidID   = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
	sacramentoBid = uuid.MustParse("00000000-0000-0000-0000-0000000000b3")
)

// RepositoryIntegrationTestSuite runs the job queries against PostGIS in a container.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *Repository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container with PostGIS
	container, err := postgres.Run(ctx,
		"postgis/postgis:16-3.4",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	// Create schema through lib/pq exactly as the importer does
	db, err := schema.Open(connStr)
	s.Require().NoError(err)
	defer db.Close()
	s.Require().NoError(schema.Apply(ctx, db))

	pool, err := pgxpool.New(ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool
	s.repo = NewRepository(pool)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx, `TRUNCATE TABLE bids, jobs, contractors`)
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO contractors (id, first_name, last_name) VALUES ($1, 'Ada', 'Lovelace')
	`, contractorID)
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO jobs (id, title, description, status, location, created_at) VALUES
		($1, 'Ferry building paint', 'Repaint trim', 'open', ST_SetSRID(ST_MakePoint(-122.3937, 37.7955), 4326), '2024-01-04T00:00:00Z'),
		($2, 'Oakland deck', 'Replace boards', 'closed', ST_SetSRID(ST_MakePoint(-122.2712, 37.8044), 4326), '2024-01-03T00:00:00Z'),
		($3, 'Sacramento roof', 'Shingles', 'open', ST_SetSRID(ST_MakePoint(-121.4944, 38.5816), 4326), '2024-01-02T00:00:00Z'),
		($4, 'Remote estimate', 'Phone consult', 'open', NULL, '2024-01-01T00:00:00Z')
	`, ferryJobID, oaklandJobID, sacramentoID, noLocationID)
	s.Require().NoError(err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO bids (id, job_id, contractor_id, amount, message, created_at) VALUES
		($1, $4, $5, 1250.50, 'Two days', '2024-02-01T00:00:00Z'),
		($2, $4, NULL, 900, 'Contractor left', '2024-02-02T00:00:00Z'),
		($3, $6, $5, 4000, 'Next month', '2024-02-03T00:00:00Z')
	`, contractorBid, orphanBidID, sacramentoBid, ferryJobID, contractorID, sacramentoID)
	s.Require().NoError(err)
}

func jobIDs(jobs []models.Job) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

func (s *RepositoryIntegrationTestSuite) TestFindJobsWithinRadius() {
	tests := []struct {
		name     string
		radius   float64
		status   string
		expected []uuid.UUID
	}{
		{
			name:     "all statuses nearest first",
			radius:   50,
			expected: []uuid.UUID{ferryJobID, oaklandJobID},
		},
		{
			name:     "open only",
			radius:   50,
			status:   models.StatusOpen,
			expected: []uuid.UUID{ferryJobID},
		},
		{
			name:     "maximum radius",
			radius:   100,
			expected: []uuid.UUID{ferryJobID, oaklandJobID, sacramentoID},
		},
		{
			name:     "nothing nearby",
			radius:   1,
			expected: []uuid.UUID{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			jobs, err := s.repo.FindJobsWithinRadius(context.Background(), centerLat, centerLon, tt.radius, tt.status)
			s.Require().NoError(err)
			s.Equal(tt.expected, jobIDs(jobs))
		})
	}
}

func (s *RepositoryIntegrationTestSuite) TestFindJobsWithinRadius_PopulatesBids() {
	jobs, err := s.repo.FindJobsWithinRadius(context.Background(), centerLat, centerLon, 10, "")
	s.Require().NoError(err)
	s.Require().Len(jobs, 2)

	ferry := jobs[0]
	s.Equal(ferryJobID, ferry.ID)
	s.Require().NotNil(ferry.Location)
	s.InDelta(-122.3937, ferry.Location.Longitude(), 1e-6)
	s.InDelta(37.7955, ferry.Location.Latitude(), 1e-6)

	s.Require().Len(ferry.Bids, 2)
	s.Equal(contractorBid, ferry.Bids[0].ID)
	s.InDelta(1250.50, ferry.Bids[0].Amount, 1e-9)
	s.Equal(&models.ContractorSummary{ID: contractorID, FirstName: "Ada", LastName: "Lovelace"}, ferry.Bids[0].ContractorID)
	s.Equal(orphanBidID, ferry.Bids[1].ID)
	s.Nil(ferry.Bids[1].ContractorID)

	s.Equal(oaklandJobID, jobs[1].ID)
	s.NotNil(jobs[1].Bids)
	s.Empty(jobs[1].Bids)
}

func (s *RepositoryIntegrationTestSuite) TestListJobs() {
	jobs, err := s.repo.ListJobs(context.Background(), "")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{ferryJobID, oaklandJobID, sacramentoID, noLocationID}, jobIDs(jobs))
	s.Nil(jobs[3].Location)

	open, err := s.repo.ListJobs(context.Background(), models.StatusOpen)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{ferryJobID, sacramentoID, noLocationID}, jobIDs(open))
}

func (s *RepositoryIntegrationTestSuite) TestHaversineMatchesSpatialQuery() {
	haversine := NewHaversineRepository(s.repo)

	for _, radius := range []float64{0, 1, 5, 10, 50, 80, 100} {
		for _, status := range []string{"", models.StatusOpen} {
			spatial, err := s.repo.FindJobsWithinRadius(context.Background(), centerLat, centerLon, radius, status)
			s.Require().NoError(err)

			naive, err := haversine.FindJobsWithinRadius(context.Background(), centerLat, centerLon, radius, status)
			s.Require().NoError(err)

			s.ElementsMatch(jobIDs(spatial), jobIDs(naive), "radius %v status %q", radius, status)
		}
	}
}

func TestRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
