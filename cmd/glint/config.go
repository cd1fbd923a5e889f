package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/glintutil/pkg/templating"
	"github.com/natefinch/atomic"
)

// Config is the top-level configuration of the glint command.
type Config struct {
	LogLevel      string                     `json:"log_level"`
	DataDir       string                     `json:"data_dir"`
	BlockSelector string                     `json:"block_selector"`
	Stylesheets   []string                   `json:"stylesheets"`
	Templates     *templating.TemplateConfig `json:"template_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		DataDir:       "./data",
		BlockSelector: "[data-id]",
		Stylesheets:   []string{},
		Templates:     templating.DefaultConfig(),
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Defaults are still usable without the file.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Templates == nil {
		config.Templates = templating.DefaultConfig()
	}
	if config.BlockSelector == "" {
		config.BlockSelector = DefaultConfig().BlockSelector
	}
	return config, nil
}

// parseLevel maps a config log level to a slog level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
