package gendata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pitwall/pitboard/pkg/logger"
)

// Output file permissions.
const filePermission = 0o644

// WriteCSV writes both tables under dir using the column layout the
// dashboard's dataset store expects. The directory is created if missing.
func WriteCSV(ctx context.Context, ds *Dataset, dir, circuitsFile, driversFile string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	circuitsPath := filepath.Join(dir, circuitsFile)
	if err := writeTable(circuitsPath, circuitRows(ds)); err != nil {
		return err
	}

	driversPath := filepath.Join(dir, driversFile)
	if err := writeTable(driversPath, driverRows(ds)); err != nil {
		return err
	}

	logger.Get().Info(ctx, "dataset written",
		logger.String("circuits", circuitsPath),
		logger.String("drivers", driversPath),
	)
	return nil
}

func circuitRows(ds *Dataset) [][]string {
	rows := [][]string{{"year", "round", "name", "country", "lat", "lng"}}
	for _, c := range ds.Circuits {
		rows = append(rows, []string{
			strconv.Itoa(c.Year),
			strconv.Itoa(c.Round),
			c.Name,
			c.Country,
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lng, 'f', -1, 64),
		})
	}
	return rows
}

func driverRows(ds *Dataset) [][]string {
	rows := [][]string{{"year", "round", "code", "forename", "surname", "number", "points", "position"}}
	for _, d := range ds.Drivers {
		rows = append(rows, []string{
			strconv.Itoa(d.Year),
			strconv.Itoa(d.Round),
			d.Code,
			d.Forename,
			d.Surname,
			strconv.Itoa(d.Number),
			strconv.FormatFloat(d.Points, 'f', -1, 64),
			strconv.Itoa(d.Position),
		})
	}
	return rows
}

func writeTable(path string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
