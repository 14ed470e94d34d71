package dataset

import (
	"time"

	"github.com/pitwall/pitboard/pkg/logger"
)

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithDataDir sets the directory containing the source tables.
func WithDataDir(dir string) Option {
	return func(s *CSVStore) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithCircuitsFile overrides the circuits table file name.
func WithCircuitsFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.circuitsFile = name
		}
	}
}

// WithDriversFile overrides the drivers table file name.
func WithDriversFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.driversFile = name
		}
	}
}

// WithReloadInterval enables the background watcher, polling the source
// files at the given interval. Zero leaves reloading off.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *CSVStore) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}

// WithReloadHook registers a callback invoked after a successful reload,
// e.g. to invalidate derived-view caches.
func WithReloadHook(hook func()) Option {
	return func(s *CSVStore) {
		s.onReload = hook
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *CSVStore) {
		if log != nil {
			s.log = log
		}
	}
}
