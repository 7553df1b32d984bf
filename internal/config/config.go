// Package config provides unified configuration for the skycat tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the unified configuration for the skycat tools.
type Config struct {
	// DataDir is the base directory for local state (spool, archive)
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SkyServer configuration
	SkyServer SkyServerConfig `json:"skyserver" yaml:"skyserver"`

	// Archive (SAS) configuration
	Archive ArchiveConfig `json:"archive" yaml:"archive"`

	// Cache configuration
	Cache CacheConfig `json:"cache" yaml:"cache"`
}

// SkyServerConfig holds query-endpoint configuration.
type SkyServerConfig struct {
	// Endpoint is the SqlSearch endpoint URL
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout bounds each query end-to-end
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ArchiveConfig holds survey-archive (SAS) retrieval configuration.
type ArchiveConfig struct {
	// Scheme is the virtual-path scheme the archive mounts under
	Scheme string `json:"scheme" yaml:"scheme"`

	// Type is the archive backend: http, local, s3
	Type string `json:"type" yaml:"type"`

	// BaseURL is the archive root URL (for http type)
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Path is the local mirror root (for local type)
	Path string `json:"path" yaml:"path"`

	// Run2D is the spectroscopic reduction version used in path templating
	Run2D string `json:"run2d" yaml:"run2d"`

	// Timeout bounds each fetch end-to-end
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds S3 mirror configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// UsePathStyle enables path-style addressing (required for MinIO)
	UsePathStyle bool `json:"use_path_style" yaml:"use_path_style"`

	// Prefix is an optional key prefix for the mirror
	Prefix string `json:"prefix" yaml:"prefix"`
}

// CacheConfig holds frame-cache configuration.
type CacheConfig struct {
	// Policy is the memo-cache policy: unbounded, lru
	Policy string `json:"policy" yaml:"policy"`

	// MaxEntries bounds the lru policy
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// SpoolDir enables the on-disk spool of raw fetched files when set
	SpoolDir string `json:"spool_dir" yaml:"spool_dir"`

	// SpoolMaxBytes is the spool byte budget
	SpoolMaxBytes int64 `json:"spool_max_bytes" yaml:"spool_max_bytes"`
}

// DefaultConfig returns the default configuration for DR14 against the
// public SDSS services.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/skycat",
		SkyServer: SkyServerConfig{
			Endpoint: "https://skyserver.sdss.org/dr14/SkyServerWS/SearchTools/SqlSearch",
			Timeout:  60 * time.Second,
		},
		Archive: ArchiveConfig{
			Scheme:  "sdss_dr14",
			Type:    "http",
			BaseURL: "https://data.sdss.org/sas/dr14/",
			Run2D:   "v5_10_0",
			Timeout: 120 * time.Second,
		},
		Cache: CacheConfig{
			Policy:        "unbounded",
			MaxEntries:    64,
			SpoolMaxBytes: 4 * 1024 * 1024 * 1024,
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/skycat"
	}
	if c.Archive.Type == "local" && c.Archive.Path == "" {
		c.Archive.Path = filepath.Join(c.DataDir, "mirror")
	}
}

// ArchiveDBPath returns the path to the query-result archive database.
func (c *Config) ArchiveDBPath() string {
	return filepath.Join(c.DataDir, "queries.db")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch c.Archive.Type {
	case "http", "local", "s3":
		// Valid backends
	default:
		return fmt.Errorf("invalid archive type: %s (must be http, local, or s3)", c.Archive.Type)
	}

	if c.Archive.Type == "http" && c.Archive.BaseURL == "" {
		return fmt.Errorf("archive.base_url is required when archive type is http")
	}
	if c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
		return fmt.Errorf("archive.s3.bucket is required when archive type is s3")
	}

	switch c.Cache.Policy {
	case "unbounded", "lru":
		// Valid policies
	default:
		return fmt.Errorf("invalid cache policy: %s (must be unbounded or lru)", c.Cache.Policy)
	}

	if c.Cache.Policy == "lru" && c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive for the lru policy, got %d", c.Cache.MaxEntries)
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the SKYCAT_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("SKYCAT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	// SkyServer configuration
	if v := os.Getenv("SKYCAT_SKYSERVER_ENDPOINT"); v != "" {
		cfg.SkyServer.Endpoint = v
	}
	if v := os.Getenv("SKYCAT_SKYSERVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SkyServer.Timeout = d
		}
	}

	// Archive configuration
	if v := os.Getenv("SKYCAT_ARCHIVE_SCHEME"); v != "" {
		cfg.Archive.Scheme = v
	}
	if v := os.Getenv("SKYCAT_ARCHIVE_TYPE"); v != "" {
		cfg.Archive.Type = v
	}
	if v := os.Getenv("SKYCAT_ARCHIVE_BASE_URL"); v != "" {
		cfg.Archive.BaseURL = v
	}
	if v := os.Getenv("SKYCAT_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
	if v := os.Getenv("SKYCAT_ARCHIVE_RUN2D"); v != "" {
		cfg.Archive.Run2D = v
	}
	if v := os.Getenv("SKYCAT_ARCHIVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Archive.Timeout = d
		}
	}
	if v := os.Getenv("SKYCAT_S3_BUCKET"); v != "" {
		cfg.Archive.S3.Bucket = v
	}
	if v := os.Getenv("SKYCAT_S3_REGION"); v != "" {
		cfg.Archive.S3.Region = v
	}
	if v := os.Getenv("SKYCAT_S3_ENDPOINT"); v != "" {
		cfg.Archive.S3.Endpoint = v
	}
	if v := os.Getenv("SKYCAT_S3_USE_PATH_STYLE"); v != "" {
		cfg.Archive.S3.UsePathStyle = v == "true" || v == "1"
	}
	if v := os.Getenv("SKYCAT_S3_PREFIX"); v != "" {
		cfg.Archive.S3.Prefix = v
	}

	// Cache configuration
	if v := os.Getenv("SKYCAT_CACHE_POLICY"); v != "" {
		cfg.Cache.Policy = v
	}
	if v := os.Getenv("SKYCAT_CACHE_MAX_ENTRIES"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Cache.MaxEntries)
	}
	if v := os.Getenv("SKYCAT_CACHE_SPOOL_DIR"); v != "" {
		cfg.Cache.SpoolDir = v
	}
	if v := os.Getenv("SKYCAT_CACHE_SPOOL_MAX_BYTES"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Cache.SpoolMaxBytes)
	}
}

// EnsureDirectories creates all required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir}
	if c.Cache.SpoolDir != "" {
		dirs = append(dirs, c.Cache.SpoolDir)
	}
	if c.Archive.Type == "local" {
		dirs = append(dirs, c.Archive.Path)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
