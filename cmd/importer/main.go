package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"parking-api/internal/config"
	"parking-api/internal/logging"
	"parking-api/internal/models"
	"parking-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import (latitude,longitude,address,owner_name)")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	logging.Setup(cfg.LogLevel)

	if cfg.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required for the importer")
	}

	log.Info().Str("file", *file).Msg("starting import")

	spots, err := parseCSVFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing CSV")
	}
	log.Info().Int("records", len(spots)).Msg("parsed records")

	ctx := context.Background()

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer conn.Close(ctx)

	// Ensure table exists
	if _, err := conn.Exec(ctx, repository.CreateTableSQL); err != nil {
		log.Fatal().Err(err).Msg("error creating table")
	}

	var before int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM parking_spots").Scan(&before); err != nil {
		log.Fatal().Err(err).Msg("error counting existing spots")
	}

	copied, err := insertSpots(ctx, conn, spots)
	if err != nil {
		log.Fatal().Err(err).Msg("error inserting records")
	}

	if err := verifyImport(ctx, conn, before+int(copied)); err != nil {
		log.Fatal().Err(err).Msg("error verifying import")
	}

	log.Info().Int64("records", copied).Msg("import finished")
}

func parseCSVFile(path string) ([]models.ParkingSpot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return parseCSV(file)
}

// parseCSV reads rows of latitude,longitude[,address[,owner_name]] after a header line.
func parseCSV(r io.Reader) ([]models.ParkingSpot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var spots []models.ParkingSpot
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected at least 2 columns", line, len(record))
		}

		var lat, lng models.Coordinate
		if err := lat.UnmarshalJSON([]byte(strings.TrimSpace(record[0]))); err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[0])
		}
		if err := lng.UnmarshalJSON([]byte(strings.TrimSpace(record[1]))); err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[1])
		}

		address := ""
		if len(record) > 2 {
			address = record[2]
		}
		var owner *string
		if len(record) > 3 {
			owner = &record[3]
		}

		spots = append(spots, models.NewParkingSpot(lat.Float64(), lng.Float64(), address, owner))
	}

	return spots, nil
}

func insertSpots(ctx context.Context, conn *pgx.Conn, spots []models.ParkingSpot) (int64, error) {
	// Use CopyFrom for bulk insert
	return conn.CopyFrom(
		ctx,
		pgx.Identifier{"parking_spots"},
		[]string{"latitude", "longitude", "address", "owner_name", "is_active"},
		pgx.CopyFromSlice(len(spots), func(i int) ([]any, error) {
			s := spots[i]
			return []any{s.Latitude, s.Longitude, s.Address, s.OwnerName, s.IsActive}, nil
		}),
	)
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM parking_spots").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}
	return nil
}
