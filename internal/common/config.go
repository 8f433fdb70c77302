package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig    `toml:"logging"`
	Extraction  ExtractionConfig `toml:"extraction"`
	OCR         OCRConfig        `toml:"ocr"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format" validate:"oneof=text json"`            // "json" or "text"
	Output     []string `toml:"output"`                                       // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                  // Time format for logs (default: "15:04:05")
}

// ExtractionConfig contains tunables for the text extraction engine.
type ExtractionConfig struct {
	MinTextLength int `toml:"min_text_length" validate:"gte=1"` // Minimum trimmed length for extracted text to pass validation
}

// OCRConfig controls the optional Tesseract OCR fallback stage.
type OCRConfig struct {
	Enabled   bool     `toml:"enabled"`   // Wire the OCR stage into the extraction chain
	Languages []string `toml:"languages"` // Trained-data hints, e.g. ["eng"]
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in obligo.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Extraction: ExtractionConfig{
			MinTextLength: 100,
		},
		OCR: OCRConfig{
			Enabled:   false, // Requires a local tesseract install - user must opt in
			Languages: []string{"eng"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files, environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks field constraints using go-playground/validator tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: OBLIGO_ENV, fallback: GO_ENV)
	if env := os.Getenv("OBLIGO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("OBLIGO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("OBLIGO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("OBLIGO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Extraction configuration
	if minLength := os.Getenv("OBLIGO_EXTRACTION_MIN_TEXT_LENGTH"); minLength != "" {
		if ml, err := strconv.Atoi(minLength); err == nil {
			config.Extraction.MinTextLength = ml
		}
	}

	// OCR configuration
	if enabled := os.Getenv("OBLIGO_OCR_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.OCR.Enabled = e
		}
	}
	if languages := os.Getenv("OBLIGO_OCR_LANGUAGES"); languages != "" {
		langs := []string{}
		for _, l := range strings.Split(languages, ",") {
			if trimmed := strings.TrimSpace(l); trimmed != "" {
				langs = append(langs, trimmed)
			}
		}
		if len(langs) > 0 {
			config.OCR.Languages = langs
		}
	}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
