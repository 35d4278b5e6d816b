// Package config loads and persists the aidetect configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDirName is the per-project configuration directory
const ConfigDirName = ".aidetect"

// Config represents the complete aidetect configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr           string `json:"addr" mapstructure:"addr"`
	MaxUploadBytes int64  `json:"maxUploadBytes" mapstructure:"maxUploadBytes"`
	ReadTimeoutSec int    `json:"readTimeoutSec" mapstructure:"readTimeoutSec"`
}

// StorageConfig contains result store configuration
type StorageConfig struct {
	Dir             string `json:"dir" mapstructure:"dir"`
	CacheTTLSeconds int    `json:"cacheTtlSeconds" mapstructure:"cacheTtlSeconds"`
}

// AnalysisConfig contains detection engine limits
type AnalysisConfig struct {
	MaxFileBytes int64    `json:"maxFileBytes" mapstructure:"maxFileBytes"`
	Extensions   []string `json:"extensions" mapstructure:"extensions"`
	Concurrency  int      `json:"concurrency" mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" mapstructure:"format"`
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMb" mapstructure:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:           "127.0.0.1:8422",
			MaxUploadBytes: 16 * 1024 * 1024,
			ReadTimeoutSec: 15,
		},
		Storage: StorageConfig{
			Dir:             ConfigDirName,
			CacheTTLSeconds: 24 * 3600,
		},
		Analysis: AnalysisConfig{
			MaxFileBytes: 1024 * 1024,
			Extensions: []string{
				".py", ".go", ".js", ".jsx", ".ts", ".tsx", ".java", ".rs",
				".kt", ".kts", ".c", ".h", ".cpp", ".cc", ".hpp", ".rb",
				".php", ".swift", ".txt",
			},
			Concurrency: 0, // 0 means one worker per CPU
		},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// LoadConfig loads configuration from <root>/.aidetect/config.json.
// A missing file yields the defaults. Environment variables with the
// AIDETECT_ prefix override individual keys.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.maxUploadBytes", def.Server.MaxUploadBytes)
	v.SetDefault("server.readTimeoutSec", def.Server.ReadTimeoutSec)
	v.SetDefault("storage.dir", def.Storage.Dir)
	v.SetDefault("storage.cacheTtlSeconds", def.Storage.CacheTTLSeconds)
	v.SetDefault("analysis.maxFileBytes", def.Analysis.MaxFileBytes)
	v.SetDefault("analysis.extensions", def.Analysis.Extensions)
	v.SetDefault("analysis.concurrency", def.Analysis.Concurrency)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.maxSizeMb", def.Logging.MaxSizeMB)
	v.SetDefault("logging.maxBackups", def.Logging.MaxBackups)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDirName))
	v.SetEnvPrefix("AIDETECT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.aidetect/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "server.maxUploadBytes", Message: "must be positive"}
	}
	if c.Analysis.MaxFileBytes <= 0 {
		return &ConfigError{Field: "analysis.maxFileBytes", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
