// Package config loads kakao settings.
//
// Settings are resolved in order, later sources winning:
//   - DefaultConfig
//   - YAML file (optional)
//   - .env file (optional, never overrides variables already set)
//   - Environment variables
//
// Environment Variables:
//
//	KAKAO_DATA_PATH   - CSV dataset path (default: data_kakao.csv)
//	KAKAO_OUTPUT_DIR  - Directory for analyze output (default: output)
//	KAKAO_ADDR        - Dashboard listen address (default: localhost:8080)
//	KAKAO_LOG_LEVEL   - debug, info, warn or error (default: info)
//	KAKAO_LOG_FORMAT  - text or json (default: text)
//	KAKAO_CACHE_SIZE  - Summaries kept in memory (default: 16)
//	KAKAO_TOP_N       - Regions shown in ranked charts and tables (default: 5)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"kakao/internal/dataset"
)

// Config is the full application configuration.
type Config struct {
	// DataPath is the CSV dataset to analyse.
	DataPath string `yaml:"data_path"`
	// OutputDir receives the workbook, charts and report.
	OutputDir string `yaml:"output_dir"`
	// TopN limits ranked charts and tables.
	TopN int `yaml:"top_n"`

	Dataset DatasetConfig `yaml:"dataset"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Cache   CacheConfig   `yaml:"cache"`
}

// DatasetConfig controls CSV parsing.
type DatasetConfig struct {
	// Delimiter is a single character; empty means comma.
	Delimiter string `yaml:"delimiter"`
	// Aliases maps extra source headers to canonical columns, on top of
	// the built-in Indonesian headers.
	Aliases map[string]string `yaml:"aliases"`
}

// ServerConfig controls the dashboard HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CacheConfig controls summary memoization.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// DefaultConfig returns settings suitable for running against a local
// data_kakao.csv.
func DefaultConfig() *Config {
	return &Config{
		DataPath:  "data_kakao.csv",
		OutputDir: "output",
		TopN:      5,
		Server: ServerConfig{
			Addr:            "localhost:8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Size: 16,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path when path is
// not empty, a .env file in the working directory when present, and the
// environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// LoadDotEnv loads variables from the given files. Missing files are
// skipped; variables already present in the environment are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from KAKAO_* variables. Unparsable numbers
// are ignored.
func (c *Config) ApplyEnv() {
	c.DataPath = getEnv("KAKAO_DATA_PATH", c.DataPath)
	c.OutputDir = getEnv("KAKAO_OUTPUT_DIR", c.OutputDir)
	c.Server.Addr = getEnv("KAKAO_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("KAKAO_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("KAKAO_LOG_FORMAT", c.Log.Format)
	c.Cache.Size = getEnvInt("KAKAO_CACHE_SIZE", c.Cache.Size)
	c.TopN = getEnvInt("KAKAO_TOP_N", c.TopN)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("data path is required")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("invalid top n: %d", c.TopN)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("invalid cache size: %d", c.Cache.Size)
	}
	if utf8.RuneCountInString(c.Dataset.Delimiter) > 1 {
		return fmt.Errorf("invalid delimiter %q: must be a single character", c.Dataset.Delimiter)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	return nil
}

// LoadOptions returns dataset options with the configured aliases merged
// over the built-in ones.
func (c *Config) LoadOptions() dataset.LoadOptions {
	aliases := make(map[string]string, len(dataset.DefaultAliases)+len(c.Dataset.Aliases))
	for k, v := range dataset.DefaultAliases {
		aliases[k] = v
	}
	for k, v := range c.Dataset.Aliases {
		aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}

	opts := dataset.LoadOptions{Aliases: aliases}
	if r, _ := utf8.DecodeRuneInString(c.Dataset.Delimiter); r != utf8.RuneError {
		opts.Comma = r
	}
	return opts
}

// String summarises the configuration for logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Data: %s, Output: %s, Addr: %s, TopN: %d, Cache: %d, Log: %s/%s}",
		c.DataPath, c.OutputDir, c.Server.Addr, c.TopN, c.Cache.Size, c.Log.Level, c.Log.Format)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
