// Package config holds the agglom binary's settings.
//
// Precedence (lowest to highest): Default(), YAML file, AGGLOM_* environment,
// command-line flags (applied by the caller). Validate runs last.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AGGLOM_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all run settings.
type Config struct {
	// Environment selects the log encoder: production (JSON) or development (console).
	Environment string `yaml:"environment" validate:"oneof=development production"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Clustering
	Linkage  string  `yaml:"linkage" validate:"oneof=upgma wpgma single complete nj"`
	Outgroup string  `yaml:"outgroup"` // leaf label or index; empty for none
	Clamp    bool    `yaml:"clamp_negative"`
	Epsilon  float64 `yaml:"epsilon" validate:"gte=0"`
	Cut      int     `yaml:"cut" validate:"gte=0"`

	// I/O
	InputFormat string `yaml:"input_format" validate:"omitempty,oneof=phylip csv json yaml"`
	Format      string `yaml:"format" validate:"oneof=newick json msgpack"`
	Precision   int    `yaml:"precision" validate:"gte=-1,lte=17"`
	Out         string `yaml:"out" validate:"required"` // directory, or "-" for stdout

	// Cache
	Store     string `yaml:"store"` // badger directory; empty disables the cache
	CacheSize int    `yaml:"cache_size" validate:"gte=0"`

	// Runtime
	Parallel    int    `yaml:"parallel" validate:"min=1,max=256"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Linkage:     "upgma",
		Epsilon:     1e-9,
		Format:      "newick",
		Precision:   5,
		Out:         "-",
		CacheSize:   128,
		Parallel:    4,
	}
}

// Load applies the YAML file at path (if non-empty) and then the
// environment over Default(). The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// LoadFile decodes the YAML file at path over c. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	return nil
}

// ApplyEnv overrides fields from AGGLOM_* variables. Unparsable numbers
// keep the current value.
func (c *Config) ApplyEnv() {
	c.Environment = getEnv("ENV", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Linkage = getEnv("LINKAGE", c.Linkage)
	c.Outgroup = getEnv("OUTGROUP", c.Outgroup)
	c.Clamp = getEnvBool("CLAMP_NEGATIVE", c.Clamp)
	c.Epsilon = getEnvFloat("EPSILON", c.Epsilon)
	c.Cut = getEnvInt("CUT", c.Cut)
	c.InputFormat = getEnv("INPUT_FORMAT", c.InputFormat)
	c.Format = getEnv("FORMAT", c.Format)
	c.Precision = getEnvInt("PRECISION", c.Precision)
	c.Out = getEnv("OUT", c.Out)
	c.Store = getEnv("STORE", c.Store)
	c.CacheSize = getEnvInt("CACHE_SIZE", c.CacheSize)
	c.Parallel = getEnvInt("PARALLEL", c.Parallel)
	c.MetricsFile = getEnv("METRICS_FILE", c.MetricsFile)
}

var validate = validator.New()

// Validate checks struct tags; every failure is reported, joined with "; ".
func (c *Config) Validate() error {
	c.Linkage = strings.ToLower(strings.TrimSpace(c.Linkage))
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}

		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %v)", field, e.Param(), e.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}

	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}

	return defaultValue
}
