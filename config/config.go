// Package config loads binfs settings from a YAML or TOML file and the
// environment.
//
// Values are layered: Default, then the file, then BINFS_* environment
// variables named after the Go fields (BINFS_MASTER_KEY, BINFS_S3_BUCKET,
// BINFS_LOG_FILE). A file holding only x_master_key and bin_url is enough for
// the default jsonbin backend.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "BINFS"

// Backend names accepted in the backend key.
const (
	BackendJSONBin = "jsonbin"
	BackendS3      = "s3"
	BackendFile    = "file"
)

var (
	ErrUnknownFormat  = errors.New("unknown config format")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrMissingKey     = errors.New("missing required key")
)

// Config holds all binfs configuration.
type Config struct {
	Backend   string   `yaml:"backend" toml:"backend" split_words:"true"`
	BinURL    string   `yaml:"bin_url" toml:"bin_url" split_words:"true"`
	MasterKey string   `yaml:"x_master_key" toml:"x_master_key" split_words:"true"`
	AccessKey string   `yaml:"x_access_key" toml:"x_access_key" split_words:"true"`
	Timeout   Duration `yaml:"timeout" toml:"timeout" split_words:"true"`
	Retries   int      `yaml:"retries" toml:"retries" split_words:"true"`

	S3   S3Config   `yaml:"s3" toml:"s3" split_words:"true"`
	File FileConfig `yaml:"file" toml:"file" split_words:"true"`
	Log  LogConfig  `yaml:"log" toml:"log" split_words:"true"`
}

// S3Config selects one object in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint" toml:"endpoint" split_words:"true"`
	Region    string `yaml:"region" toml:"region" split_words:"true"`
	Bucket    string `yaml:"bucket" toml:"bucket" split_words:"true"`
	Key       string `yaml:"key" toml:"key" split_words:"true"`
	AccessKey string `yaml:"access_key" toml:"access_key" split_words:"true"`
	SecretKey string `yaml:"secret_key" toml:"secret_key" split_words:"true"`
}

// FileConfig points at a local JSON document.
type FileConfig struct {
	Path string `yaml:"path" toml:"path" split_words:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level" toml:"level" split_words:"true"`
	File        string `yaml:"file" toml:"file" split_words:"true"`
	Development bool   `yaml:"development" toml:"development" split_words:"true"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendJSONBin,
		Timeout: Duration{30 * time.Second},
		S3: S3Config{
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if err := cfg.ReadFile(path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}

// ReadFile decodes path into cfg, choosing the format by extension.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Validate reports every key the selected backend needs but lacks.
func (c *Config) Validate() error {
	var errs []error
	missing := func(key, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingKey, key))
		}
	}

	switch c.Backend {
	case BackendJSONBin:
		missing("bin_url", c.BinURL)
		missing("x_master_key", c.MasterKey)
	case BackendS3:
		missing("s3.bucket", c.S3.Bucket)
		missing("s3.key", c.S3.Key)
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			errs = append(errs, fmt.Errorf("%w: s3.access_key and s3.secret_key must be set together", ErrMissingKey))
		}
	case BackendFile:
		missing("file.path", c.File.Path)
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	return errors.Join(errs...)
}
