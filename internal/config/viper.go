// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/mes-comptes/internal/blobstore"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by InitializeConfig.
const EnvPrefix = "COMPTES"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// StorageConfig selects where the application document is kept.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Directory string `mapstructure:"directory" yaml:"directory"`
	FileName  string `mapstructure:"file_name" yaml:"file_name"`
	KVPath    string `mapstructure:"kv_path" yaml:"kv_path"`
	KVKey     string `mapstructure:"kv_key" yaml:"kv_key"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.mes-comptes")
	v.AddConfigPath(".mes-comptes")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", string(blobstore.BackendFile))
	v.SetDefault("storage.directory", "")
	v.SetDefault("storage.file_name", blobstore.DefaultFileName)
	v.SetDefault("storage.kv_path", "")
	v.SetDefault("storage.kv_key", blobstore.DefaultKVKey)

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch blobstore.Backend(config.Storage.Backend) {
	case blobstore.BackendFile, blobstore.BackendKV, blobstore.BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'kv' or 'memory')", config.Storage.Backend)
	}

	if config.Storage.Backend == string(blobstore.BackendFile) && strings.ContainsAny(config.Storage.FileName, `/\`) {
		return fmt.Errorf("storage.file_name must be a bare file name, got: %s", config.Storage.FileName)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// StorageOptions maps the storage section to blob store options.
func (c *Config) StorageOptions() blobstore.Options {
	return blobstore.Options{
		Backend:   blobstore.Backend(c.Storage.Backend),
		Directory: c.Storage.Directory,
		FileName:  c.Storage.FileName,
		KVPath:    c.Storage.KVPath,
		KVKey:     c.Storage.KVKey,
	}
}

// CSVDelimiter returns the configured delimiter as a rune.
func (c *Config) CSVDelimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
