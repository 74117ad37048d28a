// Package config defines the application configuration and loads it from a YAML
// file, an optional .env file and CALC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for property-calculators.
type Configuration struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache,omitempty"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage,omitempty"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, markdown
}

// CacheConfig configures the Redis result cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Address  string        `mapstructure:"address" yaml:"address,omitempty"`
	Password string        `mapstructure:"password" yaml:"password,omitempty"`
	DB       int           `mapstructure:"db" yaml:"db,omitempty"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl,omitempty"`
}

// StorageConfig selects where calculation records are archived. Empty values disable a sink.
type StorageConfig struct {
	CSVDir      string `mapstructure:"csvDir" yaml:"csvDir,omitempty"`
	PostgresDSN string `mapstructure:"postgresDSN" yaml:"postgresDSN,omitempty"`
}

// BatchConfig configures the batch runner.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Cache:   CacheConfig{TTL: constants.DefaultCacheTTL},
		Batch:   BatchConfig{Concurrency: constants.DefaultBatchConcurrency},
	}
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// A missing file is not an error. Variables already set are kept.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from a reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

// LoadOrDefault loads configPath, falling back to environment overrides over the
// defaults when the file does not exist and fallback is set.
func LoadOrDefault(configPath string, fallback bool) (*Configuration, error) {
	conf, err := LoadConfiguration(configPath)
	if err == nil || !fallback {
		return conf, err
	}
	if _, statErr := os.Stat(configPath); !errors.Is(statErr, fs.ErrNotExist) {
		return nil, err
	}
	return LoadConfigurationFromReader(strings.NewReader(""))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment overrides only apply to keys viper knows about.
	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("storage.csvDir", "")
	v.SetDefault("storage.postgresDSN", "")
	v.SetDefault("batch.concurrency", d.Batch.Concurrency)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Logging.Level != "" {
		if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Logging.Format != "" {
		if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Batch.Concurrency <= 0 {
		warnings = append(warnings, fmt.Sprintf("batch concurrency %d is not positive; using %d",
			c.Batch.Concurrency, constants.DefaultBatchConcurrency))
	}
	if c.Cache.Enabled && c.Cache.Address == "" {
		warnings = append(warnings, "cache is enabled but no address is configured; caching is disabled")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		warnings = append(warnings, fmt.Sprintf("cache TTL %s is not positive; using %s",
			c.Cache.TTL, constants.DefaultCacheTTL))
	}
	return warnings
}

// BatchConcurrency returns the configured concurrency, or the default when unset.
func (c *Configuration) BatchConcurrency() int {
	if c.Batch.Concurrency <= 0 {
		return constants.DefaultBatchConcurrency
	}
	return c.Batch.Concurrency
}

// CacheEnabled reports whether a usable cache is configured.
func (c *Configuration) CacheEnabled() bool {
	return c.Cache.Enabled && c.Cache.Address != ""
}

// CacheTTL returns the configured TTL, or the default when unset.
func (c *Configuration) CacheTTL() time.Duration {
	if c.Cache.TTL <= 0 {
		return constants.DefaultCacheTTL
	}
	return c.Cache.TTL
}
