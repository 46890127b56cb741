package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binfs/binfs/config"
	"github.com/binfs/binfs/logging"
	"github.com/binfs/binfs/store"
	"github.com/binfs/binfs/vfs"
)

// ErrReported marks a failure whose message has already been written to the
// user. The error handler in main stays quiet for it.
var ErrReported = errors.New("error already reported")

type options struct {
	configPath string
	logLevel   string
	logFile    string
}

func (o *options) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "config.yaml", "Path to the configuration file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&o.logFile, "log-file", "", "Write logs to this file")
}

// load reads the configuration. The default config file may be absent; one
// named with --config must exist. Flags override file and environment.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	lc := logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	}
	if cfg.Log.File != "" {
		lc.OutputPaths = []string{cfg.Log.File}
	}
	return logging.New(lc)
}

// env is what most commands need: configuration, a logger and the store.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	store store.Store
}

func (o *options) setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		log.Close()
		return nil, err
	}
	log.Debug("store opened", zap.String("store", s.Name()), zap.String("backend", cfg.Backend))
	return &env{cfg: cfg, log: log, store: s}, nil
}

func (e *env) close() {
	e.log.Close()
}

// readDocument decodes a local JSON document. Unlike the file store, a
// missing file is an error here.
func readDocument(path string) (*vfs.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := vfs.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// loadDocument reads path when given, otherwise the configured document.
func (o *options) loadDocument(cmd *cobra.Command, path string) (*vfs.Document, error) {
	if path != "" {
		return readDocument(path)
	}
	e, err := o.setup(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}
	defer e.close()
	return store.Load(cmd.Context(), e.store)
}
