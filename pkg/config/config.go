package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Source  SourceConfig
	Search  SearchConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxConcurrent   int
	CORSOrigin      string
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// SourceConfig says where the edge list comes from. The first non-empty of
// EdgeListPath, OSMPath is used; otherwise a GridSize x GridSize fixture.
type SourceConfig struct {
	EdgeListPath string
	OSMPath      string
	OSMProfile   string
	GridSize     int
}

// SearchConfig bounds individual searches.
type SearchConfig struct {
	MaxExpansions int // 0 = unlimited
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 5 * time.Second
	defaultRequestTimeout  = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultGridSize        = 100
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// Load reads an optional .env file, then configuration from environment
// variables, applying defaults. Variables already set in the environment
// win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Host:          valueOrDefault("SERVER_HOST", defaultHost),
			MaxConcurrent: parseIntWithDefault("SERVER_MAX_CONCURRENT", runtime.NumCPU()*2),
			CORSOrigin:    os.Getenv("SERVER_CORS_ORIGIN"),
		},
		Source: SourceConfig{
			EdgeListPath: os.Getenv("PLANNER_EDGES"),
			OSMPath:      os.Getenv("PLANNER_OSM"),
			OSMProfile:   valueOrDefault("PLANNER_OSM_PROFILE", "car"),
			GridSize:     parseIntWithDefault("PLANNER_GRID_SIZE", defaultGridSize),
		},
		Search: SearchConfig{
			MaxExpansions: parseIntWithDefault("PLANNER_MAX_EXPANSIONS", 0),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key      string
		dst      *time.Duration
		fallback time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout, defaultReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout, defaultWriteTimeout},
		{"SERVER_REQUEST_TIMEOUT", &cfg.HTTP.RequestTimeout, defaultRequestTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout, defaultShutdownTimeout},
	}
	for _, d := range durations {
		v, err := parseDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}

	if cfg.HTTP.MaxConcurrent <= 0 {
		return Config{}, fmt.Errorf("SERVER_MAX_CONCURRENT must be positive, got %d", cfg.HTTP.MaxConcurrent)
	}
	if cfg.Source.GridSize < 0 {
		return Config{}, fmt.Errorf("PLANNER_GRID_SIZE must not be negative, got %d", cfg.Source.GridSize)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
