// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultHost is the Ollama endpoint used when none is configured.
	DefaultHost = "http://localhost:11434"
	// DefaultPrompt is the prompt sent to every model.
	DefaultPrompt = "Was ist ein Dieselmotor?"
	// DefaultOutput is the report file name prefix.
	DefaultOutput = "benchmark"
	// defaultRequestTimeout bounds a single inference request.
	defaultRequestTimeout = 60 * time.Second
	// defaultGPUCheckTimeout bounds a single nvidia-smi invocation.
	defaultGPUCheckTimeout = 5 * time.Second
	// defaultLogFile receives a copy of all log output.
	defaultLogFile = "ollabench.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Host              string `json:"host" mapstructure:"host"`
	Prompt            string `json:"prompt" mapstructure:"prompt"`
	Output            string `json:"output" mapstructure:"output"`
	TimeoutSeconds    int    `json:"timeout,omitempty" mapstructure:"timeout"`
	GPUTimeoutSeconds int    `json:"gpuTimeout,omitempty" mapstructure:"gpuTimeout"`
	NoChart           bool   `json:"noChart" mapstructure:"noChart"`
	NoBrowser         bool   `json:"noBrowser" mapstructure:"noBrowser"`
	TUI               bool   `json:"tui" mapstructure:"tui"`
	JSON              bool   `json:"json" mapstructure:"json"`
	LogFile           string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug             bool   `json:"debug" mapstructure:"debug"`
	ConfigPath        string `json:"-" mapstructure:"-"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Host:              DefaultHost,
		Prompt:            DefaultPrompt,
		Output:            DefaultOutput,
		TimeoutSeconds:    int(defaultRequestTimeout.Seconds()),
		GPUTimeoutSeconds: int(defaultGPUCheckTimeout.Seconds()),
		LogFile:           defaultLogFile,
	}
}

// RequestTimeout returns the timeout for one inference request, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GPUCheckTimeout returns the timeout for one nvidia-smi call.
func (c Config) GPUCheckTimeout() time.Duration {
	if c.GPUTimeoutSeconds <= 0 {
		return defaultGPUCheckTimeout
	}
	return time.Duration(c.GPUTimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Load reads the configuration at path, validates it against the config
// schema, and fills unset values with defaults. A missing file at the
// default path is not an error; a missing file at an explicit path is.
func Load(path string) (Config, error) {
	explicit := path != "" && path != DefaultConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Defaults(), nil
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(data); err != nil {
		return Config{}, err
	}

	config := Defaults()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	applyDefaults(&config)

	return config, nil
}

func applyDefaults(c *Config) {
	d := Defaults()
	if strings.TrimSpace(c.Host) == "" {
		c.Host = d.Host
	}
	if strings.TrimSpace(c.Prompt) == "" {
		c.Prompt = d.Prompt
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = d.Output
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.GPUTimeoutSeconds <= 0 {
		c.GPUTimeoutSeconds = d.GPUTimeoutSeconds
	}
}

// Validate checks raw JSON configuration against the config schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("config failed validation: %s", strings.Join(details, "; "))
}

var schemaLoader = gojsonschema.NewStringLoader(configSchema)

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "host":       { "type": "string", "pattern": "^https?://" },
    "prompt":     { "type": "string" },
    "output":     { "type": "string" },
    "timeout":    { "type": "integer", "minimum": 1 },
    "gpuTimeout": { "type": "integer", "minimum": 1 },
    "noChart":    { "type": "boolean" },
    "noBrowser":  { "type": "boolean" },
    "tui":        { "type": "boolean" },
    "json":       { "type": "boolean" },
    "logFile":    { "type": "string" },
    "debug":      { "type": "boolean" }
  }
}`
