package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// Dir is the per-project configuration directory.
	Dir = ".rustai"
	// FileName is the configuration file inside Dir.
	FileName = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. RUSTAI_SCAN_MAXLINES.
	EnvPrefix = "RUSTAI"
	// CurrentVersion is the config schema version.
	CurrentVersion = 1
)

// Config represents the complete rustai configuration
type Config struct {
	Version    int              `json:"version" mapstructure:"version"`
	Scan       ScanConfig       `json:"scan" mapstructure:"scan"`
	Generation GenerationConfig `json:"generation" mapstructure:"generation"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains line scanner limits
type ScanConfig struct {
	// MaxLines bounds the lines a single scan may examine; 0 disables the limit.
	MaxLines int `json:"maxLines" mapstructure:"maxLines"`
}

// GenerationConfig contains doc comment generation settings
type GenerationConfig struct {
	Provider       string  `json:"provider" mapstructure:"provider"`
	Model          string  `json:"model" mapstructure:"model"`
	BaseURL        string  `json:"baseURL" mapstructure:"baseURL"`
	Temperature    float64 `json:"temperature" mapstructure:"temperature"`
	MaxTokens      int     `json:"maxTokens" mapstructure:"maxTokens"`
	APIKeyEnv      string  `json:"apiKeyEnv" mapstructure:"apiKeyEnv"`
	PromptsFile    string  `json:"promptsFile" mapstructure:"promptsFile"`
	TimeoutSeconds int     `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
	// File is an optional log file; relative paths resolve against the config
	// directory and "default" means .rustai/logs/rustai.log.
	File string `json:"file,omitempty" mapstructure:"file"`
	// MaxSize enables size-based rotation of File, e.g. "10MB". Empty disables rotation.
	MaxSize    string `json:"maxSize,omitempty" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups,omitempty" mapstructure:"maxBackups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			MaxLines: 10000,
		},
		Generation: GenerationConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1/chat/completions",
			Temperature:    0.25,
			MaxTokens:      2000,
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 120,
		},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "warn",
			MaxBackups: 3,
		},
	}
}

// LoadResult contains the loaded config and where it came from
type LoadResult struct {
	Config *Config
	// ConfigPath is the file that was read, or "" when only defaults and env were used.
	ConfigPath   string
	UsedDefaults bool
	// EnvOverrides lists the RUSTAI_* variables that were set.
	EnvOverrides []EnvOverride
}

// EnvOverride is an environment variable that overrides a config key.
type EnvOverride struct {
	EnvVar string `json:"envVar" yaml:"envVar"`
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
}

// LoadConfig loads configuration from .rustai/config.json under dir.
// Environment variables prefixed with RUSTAI_ override file values.
func LoadConfig(dir string) (*Config, error) {
	result, err := LoadConfigWithDetails(dir)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration and reports which file was used.
func LoadConfigWithDetails(dir string) (*LoadResult, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(dir, Dir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	result := &LoadResult{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigError{Field: "file", Message: err.Error()}
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	for _, key := range sortedKeys(v) {
		env := EnvVarName(key)
		if value, ok := os.LookupEnv(env); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{EnvVar: env, Key: key, Value: value})
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	result.Config = &cfg
	return result, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("scan.maxLines", d.Scan.MaxLines)
	v.SetDefault("generation.provider", d.Generation.Provider)
	v.SetDefault("generation.model", d.Generation.Model)
	v.SetDefault("generation.baseURL", d.Generation.BaseURL)
	v.SetDefault("generation.temperature", d.Generation.Temperature)
	v.SetDefault("generation.maxTokens", d.Generation.MaxTokens)
	v.SetDefault("generation.apiKeyEnv", d.Generation.APIKeyEnv)
	v.SetDefault("generation.promptsFile", d.Generation.PromptsFile)
	v.SetDefault("generation.timeoutSeconds", d.Generation.TimeoutSeconds)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
}

// EnvVarName returns the environment variable that overrides key.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// EnvVarNames lists every supported override variable.
func EnvVarNames() []string {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	keys := sortedKeys(v)
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = EnvVarName(key)
	}
	return names
}

func sortedKeys(v *viper.Viper) []string {
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Save writes the configuration to .rustai/config.json under dir
func (c *Config) Save(dir string) error {
	configDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, FileName), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.MaxLines < 0 {
		return &ConfigError{Field: "scan.maxLines", Message: "must not be negative"}
	}

	g := c.Generation
	if g.Provider != "openai" {
		return &ConfigError{Field: "generation.provider", Message: "unsupported provider " + quote(g.Provider)}
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		return &ConfigError{Field: "generation.temperature", Message: "must be between 0 and 2"}
	}
	if g.MaxTokens <= 0 {
		return &ConfigError{Field: "generation.maxTokens", Message: "must be positive"}
	}
	if g.TimeoutSeconds <= 0 {
		return &ConfigError{Field: "generation.timeoutSeconds", Message: "must be positive"}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "unknown level " + quote(c.Logging.Level)}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "unknown format " + quote(c.Logging.Format)}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	return nil
}

// APIKey reads the API key from the environment variable named by APIKeyEnv.
func (g GenerationConfig) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}

// Timeout returns TimeoutSeconds as a duration.
func (g GenerationConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func quote(s string) string {
	return "'" + s + "'"
}
