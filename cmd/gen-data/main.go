package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pitwall/pitboard/internal/gendata"
)

// Default generation parameters.
const (
	defaultStartYear = 2018
	defaultEndYear   = 2023
	defaultRounds    = 20
	defaultDrivers   = 20
	defaultSeed      = 1
	defaultTimeout   = time.Minute
)

func main() {
	var (
		outDir       = flag.String("out", "data", "Output directory for the generated tables")
		circuitsFile = flag.String("circuits", "circuits.csv", "Circuits table file name")
		driversFile  = flag.String("drivers", "drivers.csv", "Drivers table file name")
		startYear    = flag.Int("start", defaultStartYear, "First season year, inclusive")
		endYear      = flag.Int("end", defaultEndYear, "Last season year, inclusive")
		rounds       = flag.Int("rounds", defaultRounds, "Races per season")
		drivers      = flag.Int("grid", defaultDrivers, "Drivers per season")
		seed         = flag.Int64("seed", defaultSeed, "Random seed; same seed, same dataset")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		gendata.ShowHelp()
		return
	}

	if err := gendata.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := gendata.Config{
		StartYear: *startYear,
		EndYear:   *endYear,
		Rounds:    *rounds,
		Drivers:   *drivers,
		Seed:      *seed,
	}

	ds, err := gendata.Generate(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		return
	}

	if err := gendata.WriteCSV(ctx, ds, *outDir, *circuitsFile, *driversFile); err != nil {
		os.Stderr.WriteString("Write failed: " + err.Error() + "\n")
		return
	}
}
