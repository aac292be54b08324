package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `koanf:"http"`
	Graph   GraphConfig   `koanf:"graph"`
	Logging LoggingConfig `koanf:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	MetricsEnabled    bool          `koanf:"metrics_enabled"`
	AllowedOriginsCSV string        `koanf:"allowed_origins"`
	AllowCredentials  bool          `koanf:"allow_credentials"`
	// RateLimit is the number of requests per minute allowed per client IP.
	// Zero disables limiting.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`
}

// AllowedOrigins splits the configured CORS origins.
func (c HTTPConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOriginsCSV, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Addr is the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GraphConfig describes connectivity to the graph store.
type GraphConfig struct {
	Driver         string `koanf:"driver" validate:"oneof=neo4j sqlite"`
	URI            string `koanf:"uri"`
	Database       string `koanf:"database"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	MaxConnections int    `koanf:"max_connections" validate:"min=1"`
	SQLitePath     string `koanf:"sqlite_path"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `koanf:"level"`
	Format        string `koanf:"format" validate:"oneof=text json"` // text|json
	IncludeCaller bool   `koanf:"include_caller"`
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Graph: GraphConfig{
			Driver:         "neo4j",
			MaxConnections: 10,
			SQLitePath:     "moviedb.sqlite",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// envKeys maps the supported environment variables to config paths.
var envKeys = map[string]string{
	"SERVER_HOST":              "http.host",
	"SERVER_PORT":              "http.port",
	"SERVER_READ_TIMEOUT":      "http.read_timeout",
	"SERVER_WRITE_TIMEOUT":     "http.write_timeout",
	"SERVER_IDLE_TIMEOUT":      "http.idle_timeout",
	"SERVER_SHUTDOWN_TIMEOUT":  "http.shutdown_timeout",
	"SERVER_METRICS_ENABLED":   "http.metrics_enabled",
	"SERVER_ALLOWED_ORIGINS":   "http.allowed_origins",
	"SERVER_ALLOW_CREDENTIALS": "http.allow_credentials",
	"SERVER_RATE_LIMIT":        "http.rate_limit",
	"GRAPH_DRIVER":             "graph.driver",
	"GRAPH_URI":                "graph.uri",
	"GRAPH_DATABASE":           "graph.database",
	"GRAPH_USERNAME":           "graph.username",
	"GRAPH_PASSWORD":           "graph.password",
	"GRAPH_MAX_CONNECTIONS":    "graph.max_connections",
	"GRAPH_SQLITE_PATH":        "graph.sqlite_path",
	"LOG_LEVEL":                "logging.level",
	"LOG_FORMAT":               "logging.format",
	"LOG_INCLUDE_CALLER":       "logging.include_caller",
}

// envTransform returns the config path for a known variable. Everything
// else maps to the empty key and is ignored.
func envTransform(key string) string {
	return envKeys[strings.ToUpper(key)]
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.Graph.Driver = strings.ToLower(strings.TrimSpace(cfg.Graph.Driver))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())
