package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for planilha-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Spreadsheet upload limits
	Upload UploadConfig `yaml:"upload"`

	// In-memory session store settings
	Session SessionConfig `yaml:"session"`

	// Question answering settings
	Query QueryConfig `yaml:"query"`

	// CORS settings for browser clients
	CORS CORSConfig `yaml:"cors"`
}

// UploadConfig holds spreadsheet upload settings.
type UploadConfig struct {
	// MaxFileBytes caps the accepted upload body size.
	MaxFileBytes int64 `yaml:"max_file_bytes" env:"UPLOAD_MAX_FILE_BYTES" env-default:"20971520"`
	// Sheet selects which sheet to read; empty means the file's first sheet.
	Sheet string `yaml:"sheet" env:"UPLOAD_SHEET" env-default:""`
	// MaxRows caps how many data rows are loaded per upload. Zero means no cap.
	MaxRows int `yaml:"max_rows" env:"UPLOAD_MAX_ROWS" env-default:"100000"`
}

// SessionConfig holds in-memory session store settings.
type SessionConfig struct {
	// TTLMinutes is how long idle sessions are kept. Zero means forever.
	TTLMinutes int `yaml:"ttl_minutes" env:"SESSION_TTL_MINUTES" env-default:"0"`
	// CleanupIntervalMinutes is how often expired sessions are swept.
	CleanupIntervalMinutes int `yaml:"cleanup_interval_minutes" env:"SESSION_CLEANUP_INTERVAL_MINUTES" env-default:"5"`
	// MaxSessions caps how many sessions are held at once; the least
	// recently used session is evicted when the cap is reached.
	MaxSessions int `yaml:"max_sessions" env:"SESSION_MAX_SESSIONS" env-default:"100"`
}

// QueryConfig holds question answering settings.
type QueryConfig struct {
	// SimilarityCutoff is the minimum fuzzy-match similarity for column
	// resolution, between 0 and 1.
	SimilarityCutoff float64 `yaml:"similarity_cutoff" env:"QUERY_SIMILARITY_CUTOFF" env-default:"0.5"`
	// MaxListValues caps how many distinct values a list answer shows.
	MaxListValues int `yaml:"max_list_values" env:"QUERY_MAX_LIST_VALUES" env-default:"50"`
	// MaxListRows caps how many rows a row-listing answer shows.
	MaxListRows int `yaml:"max_list_rows" env:"QUERY_MAX_LIST_ROWS" env-default:"10"`
	// SynonymsPath points at an optional YAML file mapping question
	// phrases to column names. Empty disables synonyms.
	SynonymsPath string `yaml:"synonyms_path" env:"QUERY_SYNONYMS_PATH" env-default:""`
}

// CORSConfig holds CORS settings for browser clients.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated list of origins, or "*".
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml does not exist the configuration comes from
// environment variables and defaults alone. The version parameter is
// injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Upload.MaxFileBytes <= 0 {
		return fmt.Errorf("upload.max_file_bytes must be positive, got %d", c.Upload.MaxFileBytes)
	}
	if c.Upload.MaxRows < 0 {
		return fmt.Errorf("upload.max_rows must not be negative, got %d", c.Upload.MaxRows)
	}
	if c.Query.SimilarityCutoff < 0 || c.Query.SimilarityCutoff > 1 {
		return fmt.Errorf("query.similarity_cutoff must be between 0 and 1, got %g", c.Query.SimilarityCutoff)
	}
	if c.Session.TTLMinutes < 0 {
		return fmt.Errorf("session.ttl_minutes must not be negative, got %d", c.Session.TTLMinutes)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// SessionTTL returns the session TTL as a duration. Zero means sessions
// never expire.
func (c *SessionConfig) SessionTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// CleanupInterval returns the cleanup sweep interval as a duration.
func (c *SessionConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMinutes) * time.Minute
}

// Origins returns the allowed CORS origins as a slice, trimming whitespace
// around each comma-separated entry.
func (c *CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
