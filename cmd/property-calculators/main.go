// Command property-calculators runs the property and retirement calculators from the
// command line or as an HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/property-calculators/internal/cache"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/calculators"
	"github.com/iwvelando/property-calculators/internal/config"
	"github.com/iwvelando/property-calculators/internal/storage"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

// app holds the state shared by every command once the root pre-run has finished.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "property-calculators",
		Short:         "Real estate and retirement calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.outputFormat, "output-format", "", "output format override: pretty, csv, json, markdown")

	root.AddCommand(
		newListCmd(a),
		newCalculateCmd(a),
		newValidateCmd(a),
		newReportCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	if err := config.LoadEnvFile(constants.DefaultEnvFile); err != nil {
		return err
	}

	// Only the implicit default path may be absent.
	conf, err := config.LoadOrDefault(a.configPath, a.configPath == constants.DefaultConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main.setup"))
	}
	return nil
}

// registry returns the calculators, decorated with the result cache when one is configured.
// The returned func releases the cache connection.
func (a *app) registry() (*calculator.Registry, func()) {
	reg := calculators.Default()
	if !a.conf.CacheEnabled() {
		return reg, func() {}
	}

	repo, err := cache.NewRedisCache(a.conf.Cache, a.logger)
	if err != nil {
		a.logger.Warn("result cache unavailable, continuing without it",
			zap.String("op", "main.registry"),
			zap.Error(err),
		)
		return reg, func() {}
	}
	release := func() {
		if err := repo.Close(); err != nil {
			a.logger.Warn("failed to close result cache", zap.String("op", "main.registry"), zap.Error(err))
		}
	}
	return reg.Wrap(cache.Wrapper(repo, a.conf.CacheTTL(), a.logger)), release
}

func (a *app) sink(ctx context.Context) (storage.Sink, error) {
	return storage.Open(ctx, a.conf.Storage, a.logger)
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	// Results go to stdout, so logs must not.
	cfg.OutputPaths = []string{"stderr"}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}
