// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pitwall/pitboard/internal/adapters/dataset"
	"github.com/pitwall/pitboard/internal/domain/charts"
	"github.com/pitwall/pitboard/internal/domain/model"
	"github.com/pitwall/pitboard/internal/domain/standings"
	"github.com/pitwall/pitboard/internal/domain/types"
	"github.com/pitwall/pitboard/internal/domain/viewcache"
	"github.com/pitwall/pitboard/pkg/logger"
	"github.com/pitwall/pitboard/pkg/metrics"
)

// Default service configuration.
const (
	defaultStartYear       = 1950
	defaultEndYear         = 2023
	defaultSeasonCacheSize = 16
)

// Service implements the API dependencies for the season dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store dataset.Store
	cache *viewcache.Cache[types.SeasonView]

	// Store lifecycle, present when the service built the store itself
	csvStore *dataset.CSVStore

	// Configuration
	dataDir         string
	circuitsFile    string
	driversFile     string
	startYear       int
	endYear         int
	seasonCacheSize int
	reloadInterval  time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithStore injects a prebuilt dataset store. The service then skips
// building its own CSV store and does not manage the store's lifecycle.
func WithStore(store dataset.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataDir sets the directory holding the source tables.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithTableFiles overrides the source table file names.
func WithTableFiles(circuits, drivers string) Option {
	return func(s *Service) {
		if circuits != "" {
			s.circuitsFile = circuits
		}
		if drivers != "" {
			s.driversFile = drivers
		}
	}
}

// WithYearRange bounds the dashboard's year selector, inclusive.
func WithYearRange(start, end int) Option {
	return func(s *Service) {
		if start > 0 && end >= start {
			s.startYear = start
			s.endYear = end
		}
	}
}

// WithSeasonCacheSize bounds the rendered-season view cache.
func WithSeasonCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.seasonCacheSize = size
		}
	}
}

// WithReloadInterval enables background dataset reloading.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:         "data",
		circuitsFile:    "circuits.csv",
		driversFile:     "drivers.csv",
		startYear:       defaultStartYear,
		endYear:         defaultEndYear,
		seasonCacheSize: defaultSeasonCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset snapshot and initializes the view cache.
// A missing or malformed source table is fatal: the error is returned and
// the service stays stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	s.cache = viewcache.New[types.SeasonView](viewcache.WithMaxSize(s.seasonCacheSize))

	if s.store == nil {
		store := dataset.NewCSVStore(ctx,
			dataset.WithDataDir(s.dataDir),
			dataset.WithCircuitsFile(s.circuitsFile),
			dataset.WithDriversFile(s.driversFile),
			dataset.WithReloadInterval(s.reloadInterval),
			dataset.WithReloadHook(func() {
				s.cache.Invalidate(context.Background())
				metrics.UpdateViewCacheSize(0)
			}),
			dataset.WithLogger(s.logger.Named("dataset")),
		)
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		store.Watch(ctx)
		s.store = store
		s.csvStore = store
	}

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("startYear", s.startYear),
		logger.Int("endYear", s.endYear),
		logger.Int("seasonCacheSize", s.seasonCacheSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping dashboard service...")

	if s.csvStore != nil {
		s.csvStore.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Years returns the selectable season years, newest first. The range comes
// from configuration, matching the dashboard's fixed selector, regardless
// of which years carry data.
func (s *Service) Years(_ context.Context) []int {
	years := make([]int, 0, s.endYear-s.startYear+1)
	for y := s.endYear; y >= s.startYear; y-- {
		years = append(years, y)
	}
	return years
}

// Season returns the full render payload for one year. A year with no rows
// yields an empty placeholder view, not an error; only a missing dataset
// fails.
func (s *Service) Season(ctx context.Context, year int) (types.SeasonView, error) {
	if view, ok := s.cache.Get(ctx, year); ok {
		metrics.RecordViewCacheHit()
		metrics.RecordSeasonRenderCached()
		return view, nil
	}
	metrics.RecordViewCacheMiss()

	view, err := s.buildSeason(ctx, year)
	if err != nil {
		return types.SeasonView{}, err
	}

	s.cache.Put(ctx, year, view)
	metrics.UpdateViewCacheSize(s.cache.Len())
	metrics.RecordSeasonRender()
	return view, nil
}

// buildSeason runs the full per-interaction pipeline: filter by year,
// derive rankings, build every chart spec.
func (s *Service) buildSeason(ctx context.Context, year int) (types.SeasonView, error) {
	circuits, err := s.store.Circuits(ctx)
	if err != nil {
		return types.SeasonView{}, err
	}
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		return types.SeasonView{}, err
	}

	yearCircuits := standings.FilterYear(circuits, year)
	yearDrivers := standings.FilterYear(drivers, year)

	view := types.SeasonView{
		Year:     year,
		Title:    fmt.Sprintf("Formula 1 Season %d", year),
		Races:    racesTable(yearCircuits),
		WorldMap: charts.WorldMap(yearCircuits),
	}

	rankings, err := standings.SeasonRankings(yearDrivers)
	if err != nil {
		// No driver rows for this year: an empty placeholder view.
		view.Empty = true
		view.Standings = []types.Standing{}
		view.Progression = charts.DriverProgression(nil, nil)
		view.PointsBar = charts.DriverPointsBar(nil)
		s.logger.Debug(ctx, "season has no driver rows", logger.Int("year", year))
		return view, nil
	}

	view.Standings = standingsTable(rankings)
	view.Progression = charts.DriverProgression(yearDrivers, rankings.Codes())
	view.PointsBar = charts.DriverPointsBar(rankings)

	if banner, err := charts.WinnerBanner(rankings); err == nil {
		view.Winner = banner
	}
	return view, nil
}

// SeasonRankings returns the season standings table for one year.
func (s *Service) SeasonRankings(ctx context.Context, year int) ([]types.Standing, error) {
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		return nil, err
	}
	rankings, err := standings.SeasonRankings(standings.FilterYear(drivers, year))
	if err != nil {
		if errors.Is(err, standings.ErrEmptyInput) {
			return []types.Standing{}, nil
		}
		return nil, err
	}
	return standingsTable(rankings), nil
}

// CircuitRankings returns the standings at the round hosted by the named
// circuit in the given year. Returns standings.ErrCircuitNotFound when the
// year's calendar has no such circuit.
func (s *Service) CircuitRankings(ctx context.Context, year int, name string) ([]types.Standing, error) {
	circuits, err := s.store.Circuits(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		return nil, err
	}
	rankings, err := standings.CircuitRankings(
		standings.FilterYear(drivers, year),
		standings.FilterYear(circuits, year),
		name,
	)
	if err != nil {
		return nil, err
	}
	return standingsTable(rankings), nil
}

// ProgressionPNG renders the year's progression chart as a PNG image.
func (s *Service) ProgressionPNG(ctx context.Context, year int) ([]byte, error) {
	view, err := s.Season(ctx, year)
	if err != nil {
		return nil, err
	}
	img, err := charts.RenderProgressionPNG(view.Progression)
	if err != nil {
		return nil, err
	}
	metrics.RecordChartExport("progression")
	return img, nil
}

// StandingsPNG renders the year's standings bar chart as a PNG image.
func (s *Service) StandingsPNG(ctx context.Context, year int) ([]byte, error) {
	view, err := s.Season(ctx, year)
	if err != nil {
		return nil, err
	}
	img, err := charts.RenderStandingsPNG(view.PointsBar)
	if err != nil {
		return nil, err
	}
	metrics.RecordChartExport("standings")
	return img, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         true,
		"startYear":       s.startYear,
		"endYear":         s.endYear,
		"seasonCacheSize": s.seasonCacheSize,
	}
	if !s.started {
		stats["started"] = false
		return stats
	}

	stats["cachedSeasons"] = s.cache.Len()
	if circuits, err := s.store.Circuits(ctx); err == nil {
		stats["circuitRows"] = len(circuits)
	}
	if drivers, err := s.store.Drivers(ctx); err == nil {
		stats["driverRows"] = len(drivers)
	}

	metrics.UpdateViewCacheSize(s.cache.Len())
	return stats
}

// racesTable maps circuit rows to the schedule table, ordered by round.
func racesTable(circuits []model.Circuit) []types.Race {
	rows := make([]types.Race, len(circuits))
	for i, c := range circuits {
		rows[i] = types.Race{Round: c.Round, Name: c.Name, Country: c.Country}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Round < rows[j].Round })
	return rows
}

// standingsTable maps ranked driver rows to the standings table.
func standingsTable(rankings standings.Rankings) []types.Standing {
	rows := make([]types.Standing, len(rankings))
	for i, d := range rankings {
		rows[i] = types.Standing{
			Position: d.Position,
			Code:     d.Code,
			Name:     d.FullName(),
			Number:   d.Number,
			Points:   d.Points,
		}
	}
	return rows
}
