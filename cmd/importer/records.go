package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"jobs-radius-api/internal/models"

	"github.com/google/uuid"
)

// JobRecord is one row of the jobs CSV
type JobRecord struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      string
	// Lat and Lon are nil for jobs posted without a location.
	Lat       *float64
	Lon       *float64
	CreatedAt time.Time
}

// BidRecord is one row of the bids CSV, carrying the contractor it references
type BidRecord struct {
	ID                  uuid.UUID
	JobID               uuid.UUID
	ContractorID        *uuid.UUID
	ContractorFirstName string
	ContractorLastName  string
	Amount              float64
	Message             string
}

const (
	jobColumns = 7 // id,title,description,status,latitude,longitude,created_at
	bidColumns = 7 // id,job_id,contractor_id,contractor_first_name,contractor_last_name,amount,message
)

// readCSV opens filePath and returns its rows without the header
func readCSV(filePath string, columns int) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRows(file, columns)
}

func readRows(r io.Reader, columns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < columns {
			return nil, fmt.Errorf("invalid record length: %d, expected at least %d columns", len(record), columns)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

func parseJobRecords(rows [][]string, now time.Time) ([]JobRecord, error) {
	records := make([]JobRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1

		id, err := parseOptionalUUID(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id: %s", line, row[0])
		}

		status := strings.TrimSpace(row[3])
		if status == "" {
			status = models.StatusOpen
		}

		lat, lon, err := parseLocation(row[4], row[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		createdAt := now
		if s := strings.TrimSpace(row[6]); s != "" {
			createdAt, err = time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid created_at: %s", line, s)
			}
		}

		records = append(records, JobRecord{
			ID:          id,
			Title:       row[1],
			Description: row[2],
			Status:      status,
			Lat:         lat,
			Lon:         lon,
			CreatedAt:   createdAt,
		})
	}

	return records, nil
}

func parseLocation(latStr, lonStr string) (*float64, *float64, error) {
	latStr, lonStr = strings.TrimSpace(latStr), strings.TrimSpace(lonStr)
	if latStr == "" && lonStr == "" {
		return nil, nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, nil, errors.New("latitude and longitude must both be set or both be empty")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, fmt.Errorf("invalid latitude: %s", latStr)
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, nil, fmt.Errorf("invalid longitude: %s", lonStr)
	}

	return &lat, &lon, nil
}

func parseBidRecords(rows [][]string) ([]BidRecord, error) {
	records := make([]BidRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2

		id, err := parseOptionalUUID(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id: %s", line, row[0])
		}

		jobID, err := uuid.Parse(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid job_id: %s", line, row[1])
		}

		var contractorID *uuid.UUID
		if s := strings.TrimSpace(row[2]); s != "" {
			parsed, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid contractor_id: %s", line, row[2])
			}
			contractorID = &parsed
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("line %d: invalid amount: %s", line, row[5])
		}

		records = append(records, BidRecord{
			ID:                  id,
			JobID:               jobID,
			ContractorID:        contractorID,
			ContractorFirstName: row[3],
			ContractorLastName:  row[4],
			Amount:              amount,
			Message:             row[6],
		})
	}

	return records, nil
}

// parseOptionalUUID generates a new id for empty input
func parseOptionalUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(s)
}
