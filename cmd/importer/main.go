package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"jobs-radius-api/internal/config"
	"jobs-radius-api/internal/schema"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// CLI is the importer's command line
type CLI struct {
	Jobs        string `help:"Path to the jobs CSV file." type:"existingfile" required:""`
	Bids        string `help:"Path to the bids CSV file." type:"path"`
	ConfigDir   string `help:"Directory containing app.env." type:"path" default:"configs"`
	SkipMigrate bool   `help:"Do not create the schema before importing."`
	Verbose     bool   `help:"Enable debug logging."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("importer"),
		kong.Description("Bulk-load jobs, contractors and bids from CSV."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := kctx.Run(logger); err != nil {
		logger.Error().Err(err).Msg("import failed")
		os.Exit(1)
	}
}

// Run parses the input files, applies the schema and loads the rows in one transaction.
func (c *CLI) Run(logger zerolog.Logger) error {
	ctx := context.Background()

	logger.Info().Str("file", c.Jobs).Msg("starting import")

	rows, err := readCSV(c.Jobs, jobColumns)
	if err != nil {
		return fmt.Errorf("error parsing jobs CSV: %w", err)
	}
	jobs, err := parseJobRecords(rows, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error parsing jobs CSV: %w", err)
	}
	logger.Info().Int("count", len(jobs)).Msg("parsed jobs")

	var bids []BidRecord
	if c.Bids != "" {
		rows, err := readCSV(c.Bids, bidColumns)
		if err != nil {
			return fmt.Errorf("error parsing bids CSV: %w", err)
		}
		bids, err = parseBidRecords(rows)
		if err != nil {
			return fmt.Errorf("error parsing bids CSV: %w", err)
		}
		logger.Info().Int("count", len(bids)).Msg("parsed bids")
	}

	// Load config
	cfg, err := config.LoadConfig(c.ConfigDir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure tables exist
	if !c.SkipMigrate {
		db, err := schema.Open(cfg.DBSource)
		if err != nil {
			return err
		}
		err = schema.Apply(ctx, db)
		db.Close()
		if err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
		logger.Debug().Msg("schema applied")
	}

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertJobs(ctx, tx, jobs); err != nil {
		return fmt.Errorf("error inserting jobs: %w", err)
	}
	if err := upsertContractors(ctx, tx, bids); err != nil {
		return fmt.Errorf("error inserting contractors: %w", err)
	}
	if err := insertBids(ctx, tx, bids); err != nil {
		return fmt.Errorf("error inserting bids: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing import: %w", err)
	}

	// Verify data
	if err := verifyImport(ctx, conn, logger); err != nil {
		return fmt.Errorf("error verifying import: %w", err)
	}

	logger.Info().Int("jobs", len(jobs)).Int("bids", len(bids)).Msg("successfully imported")
	return nil
}
