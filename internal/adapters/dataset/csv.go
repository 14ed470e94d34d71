package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pitwall/pitboard/internal/domain/model"
	"github.com/pitwall/pitboard/pkg/logger"
	"github.com/pitwall/pitboard/pkg/metrics"
)

// Default file layout inside the data directory.
const (
	defaultDataDir      = "data"
	defaultCircuitsFile = "circuits.csv"
	defaultDriversFile  = "drivers.csv"
)

// snapshot is one immutable load of both tables.
type snapshot struct {
	circuits []model.Circuit
	drivers  []model.DriverResult

	circuitsModTime time.Time
	driversModTime  time.Time
}

// CSVStore implements Store over two delimited flat files. The first Load
// is the only required one; an optional watcher reloads when either file's
// mtime changes and swaps the snapshot atomically.
type CSVStore struct {
	mu   sync.RWMutex
	snap *snapshot

	dataDir      string
	circuitsFile string
	driversFile  string

	reloadInterval time.Duration
	onReload       func()
	stopCh         chan struct{}
	doneCh         chan struct{}

	log logger.Logger
}

// NewCSVStore creates a store with configuration options. No file is read
// until Load is called.
func NewCSVStore(_ context.Context, opts ...Option) *CSVStore {
	s := &CSVStore{
		dataDir:      defaultDataDir,
		circuitsFile: defaultCircuitsFile,
		driversFile:  defaultDriversFile,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("dataset")
	}
	return s
}

// Load reads both tables and publishes the snapshot. Returns ErrUnavailable
// (wrapped with the cause) if either file is missing or malformed; in that
// case any previously published snapshot stays in place.
func (s *CSVStore) Load(ctx context.Context) error {
	start := time.Now()

	circuitsPath := filepath.Join(s.dataDir, s.circuitsFile)
	driversPath := filepath.Join(s.dataDir, s.driversFile)

	circuits, circuitsMod, err := loadCircuitsFile(circuitsPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, circuitsPath, err)
	}
	drivers, driversMod, err := loadDriversFile(driversPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, driversPath, err)
	}

	s.mu.Lock()
	s.snap = &snapshot{
		circuits:        circuits,
		drivers:         drivers,
		circuitsModTime: circuitsMod,
		driversModTime:  driversMod,
	}
	s.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecordDatasetLoadDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateDatasetRows(len(circuits), len(drivers))
	metrics.UpdateDatasetLastLoadUnix(time.Now().Unix())

	s.log.Info(ctx, "dataset loaded",
		logger.Int("circuits", len(circuits)),
		logger.Int("drivers", len(drivers)),
		logger.Any("elapsed", elapsed),
	)
	return nil
}

// Circuits returns the circuit rows of the current snapshot.
func (s *CSVStore) Circuits(_ context.Context) ([]model.Circuit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrUnavailable
	}
	return s.snap.circuits, nil
}

// Drivers returns the driver result rows of the current snapshot.
func (s *CSVStore) Drivers(_ context.Context) ([]model.DriverResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrUnavailable
	}
	return s.snap.drivers, nil
}

// Watch starts the background reload loop. It is a no-op when no reload
// interval was configured. Stop terminates the loop.
func (s *CSVStore) Watch(ctx context.Context) {
	if s.reloadInterval <= 0 {
		close(s.doneCh)
		return
	}
	go s.watchLoop(ctx)
}

// Stop terminates the watch loop and waits for it to exit.
func (s *CSVStore) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.doneCh
}

func (s *CSVStore) watchLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if !s.sourceChanged() {
				continue
			}
			if err := s.Load(ctx); err != nil {
				// Keep serving the previous snapshot.
				s.log.Error(ctx, "dataset reload failed", logger.Error(err))
				continue
			}
			metrics.RecordDatasetReload()
			if s.onReload != nil {
				s.onReload()
			}
		}
	}
}

// sourceChanged reports whether either source file's mtime moved past the
// snapshot's.
func (s *CSVStore) sourceChanged() bool {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return true
	}

	if fi, err := os.Stat(filepath.Join(s.dataDir, s.circuitsFile)); err == nil {
		if fi.ModTime().After(snap.circuitsModTime) {
			return true
		}
	}
	if fi, err := os.Stat(filepath.Join(s.dataDir, s.driversFile)); err == nil {
		if fi.ModTime().After(snap.driversModTime) {
			return true
		}
	}
	return false
}

// loadCircuitsFile reads and parses the circuits table.
func loadCircuitsFile(path string) ([]model.Circuit, time.Time, error) {
	f, fi, err := openTable(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = f.Close() }()

	cols, rows, err := readTable(f)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := requireColumns(cols, "year", "round", "name", "country", "lat", "lng"); err != nil {
		return nil, time.Time{}, err
	}

	out := make([]model.Circuit, 0, len(rows))
	for i, row := range rows {
		c := model.Circuit{
			Name:    row[cols["name"]],
			Country: row[cols["country"]],
		}
		if c.Year, err = parseInt(row[cols["year"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "year", err)
		}
		if c.Round, err = parseInt(row[cols["round"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "round", err)
		}
		if c.Lat, err = strconv.ParseFloat(strings.TrimSpace(row[cols["lat"]]), 64); err != nil {
			return nil, time.Time{}, rowError(path, i, "lat", err)
		}
		if c.Lng, err = strconv.ParseFloat(strings.TrimSpace(row[cols["lng"]]), 64); err != nil {
			return nil, time.Time{}, rowError(path, i, "lng", err)
		}
		out = append(out, c)
	}
	return out, fi.ModTime(), nil
}

// loadDriversFile reads and parses the drivers table.
func loadDriversFile(path string) ([]model.DriverResult, time.Time, error) {
	f, fi, err := openTable(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = f.Close() }()

	cols, rows, err := readTable(f)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := requireColumns(cols, "year", "round", "code", "forename", "surname", "number", "points", "position"); err != nil {
		return nil, time.Time{}, err
	}

	out := make([]model.DriverResult, 0, len(rows))
	for i, row := range rows {
		d := model.DriverResult{
			Code:     row[cols["code"]],
			Forename: row[cols["forename"]],
			Surname:  row[cols["surname"]],
		}
		if d.Year, err = parseInt(row[cols["year"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "year", err)
		}
		if d.Round, err = parseInt(row[cols["round"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "round", err)
		}
		if d.Number, err = parseInt(row[cols["number"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "number", err)
		}
		if d.Points, err = strconv.ParseFloat(strings.TrimSpace(row[cols["points"]]), 64); err != nil {
			return nil, time.Time{}, rowError(path, i, "points", err)
		}
		if d.Position, err = parseInt(row[cols["position"]]); err != nil {
			return nil, time.Time{}, rowError(path, i, "position", err)
		}
		out = append(out, d)
	}
	return out, fi.ModTime(), nil
}

func openTable(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, fi, nil
}

// readTable reads a header row plus data rows and returns a column index.
func readTable(r io.Reader) (map[string]int, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return cols, rows, nil
}

func requireColumns(cols map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func rowError(path string, row int, column string, err error) error {
	// Row index is zero-based over data rows; +2 accounts for the header and
	// one-based file lines.
	return fmt.Errorf("%s: line %d, column %s: %w", path, row+2, column, err)
}
