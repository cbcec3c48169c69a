package model

import "time"

// Config holds all pensionfacts configuration
type Config struct {
	Tables       TablesConfig      `yaml:"tables" mapstructure:"tables"`
	Cleaning     CleaningConfig    `yaml:"cleaning" mapstructure:"cleaning"`
	Limits       LimitsConfig      `yaml:"limits" mapstructure:"limits"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Store        StoreConfig       `yaml:"store" mapstructure:"store"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Logging      LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// TablesConfig holds the lookup tables every normalizer and classifier is driven by.
// Slices are ordered: the first matching entry wins wherever order matters.
type TablesConfig struct {
	States         []StateVariants     `yaml:"states" mapstructure:"states"`
	Frequencies    []FrequencyVariants `yaml:"frequencies" mapstructure:"frequencies"`
	FileTypeTokens map[string]string   `yaml:"file_type_tokens" mapstructure:"file_type_tokens"`
	Categories     []CategoryTerms     `yaml:"categories" mapstructure:"categories"`
	UnknownMarkers []string            `yaml:"unknown_markers" mapstructure:"unknown_markers"`
	TitleStopwords []string            `yaml:"title_stopwords" mapstructure:"title_stopwords"`
	OCRCorrections map[string]string   `yaml:"ocr_corrections" mapstructure:"ocr_corrections"`
	KnownActs      []KnownAct          `yaml:"known_acts" mapstructure:"known_acts"`
	CPI            map[string]float64  `yaml:"cpi" mapstructure:"cpi"`
	CPITarget      float64             `yaml:"cpi_target" mapstructure:"cpi_target"`
}

// StateVariants maps raw spellings to one canonical lowercase state name
type StateVariants struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Variants []string `yaml:"variants" mapstructure:"variants"`
}

// FrequencyVariants maps raw frequency spellings to one canonical term
type FrequencyVariants struct {
	Term     PaymentFrequency `yaml:"term" mapstructure:"term"`
	Variants []string         `yaml:"variants" mapstructure:"variants"`
}

// CategoryTerms lists the title tokens that imply a category tag
type CategoryTerms struct {
	Label  string   `yaml:"label" mapstructure:"label"`
	Tokens []string `yaml:"tokens" mapstructure:"tokens"`
}

// KnownAct is a pension act of Congress, keyed by ISO date
type KnownAct struct {
	Date        string `yaml:"date" mapstructure:"date"`
	Description string `yaml:"description" mapstructure:"description"`
}

// CleaningConfig controls the cleaned copy of the document text. Dates and
// amounts are always read from the uncleaned text.
type CleaningConfig struct {
	Mode        string `yaml:"mode" mapstructure:"mode"` // full, minimal, amounts, none
	IncludeText bool   `yaml:"include_text" mapstructure:"include_text"`
}

// LimitsConfig caps input sizes
type LimitsConfig struct {
	MaxTextBytes int `yaml:"max_text_bytes" mapstructure:"max_text_bytes"`
}

// ConcurrencyConfig controls parallel processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig caps batch throughput (0 = unlimited)
type RateLimitConfig struct {
	RowsPerSecond float64 `yaml:"rows_per_second" mapstructure:"rows_per_second"`
	BurstSize     int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls memoization of document reports
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Directory string        `yaml:"directory" mapstructure:"directory"` // Empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// StoreConfig controls SQLite persistence of reports
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Empty disables the store
}

// OutputConfig controls rendering
type OutputConfig struct {
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// LoggingConfig controls slog setup
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tables: DefaultTables(),
		Cleaning: CleaningConfig{
			Mode: "full",
		},
		Limits: LimitsConfig{
			MaxTextBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RowsPerSecond: 0,
			BurstSize:     50,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Directory: "",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Pretty: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
