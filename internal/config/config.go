// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Season selector bounds of the shipped dataset.
const (
	defaultStartYear = 1950
	defaultEndYear   = 2023
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the processed source tables (circuits.csv, drivers.csv).
	DataDir string `koanf:"data_dir"`

	// CircuitsFile and DriversFile override the table file names.
	CircuitsFile string `koanf:"circuits_file"`
	DriversFile  string `koanf:"drivers_file"`

	// StartYear and EndYear bound the dashboard's year selector, inclusive.
	StartYear int `koanf:"start_year"`
	EndYear   int `koanf:"end_year"`

	// SeasonCacheSize bounds the rendered-season view cache.
	SeasonCacheSize int `koanf:"season_cache_size"`

	// ReloadIntervalS enables background dataset reloading when positive.
	ReloadIntervalS int `koanf:"reload_interval_s"`

	// MaxTableLimit caps the optional ?limit on rankings endpoints.
	MaxTableLimit int `koanf:"max_table_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		DataDir:         "data",
		CircuitsFile:    "circuits.csv",
		DriversFile:     "drivers.csv",
		StartYear:       defaultStartYear,
		EndYear:         defaultEndYear,
		SeasonCacheSize: 16,
		ReloadIntervalS: 0,
		MaxTableLimit:   100,
	}
}
