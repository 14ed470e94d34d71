package gendata

import (
	"fmt"
	"os"

	"github.com/pitwall/pitboard/pkg/logger"
)

// SetupLogging initializes the structured logger for CLI runs.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the dataset generator.
func ShowHelp() {
	os.Stdout.WriteString(`Pitboard Dataset Generator
==========================

Generates synthetic circuits and driver standings tables for local
development of the season dashboard.

Usage:
  go run cmd/gen-data/main.go [options]

Options:
  -out string
        Output directory for the generated tables (default "data")
  -circuits string
        Circuits table file name (default "circuits.csv")
  -drivers string
        Drivers table file name (default "drivers.csv")
  -start int
        First season year, inclusive (default 2018)
  -end int
        Last season year, inclusive (default 2023)
  -rounds int
        Races per season (default 20)
  -grid int
        Drivers per season (default 20)
  -seed int
        Random seed; same seed, same dataset (default 1)
  -help
        Show this help message

Examples:
  # Generate the default six seasons
  go run cmd/gen-data/main.go

  # Generate one small season for quick tests
  go run cmd/gen-data/main.go -start 2023 -end 2023 -rounds 5 -grid 10

  # Regenerate a known dataset
  go run cmd/gen-data/main.go -seed 42 -out testdata
`)
}
