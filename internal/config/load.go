package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/abbrex/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is returned when a config file fails validation
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnsupportedFormat is returned for config files that are not YAML or JSON
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s failed %q", f.Namespace(), f.Tag())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
}

// Validate checks c against its field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// Load reads a YAML or JSON(C) config file over the defaults and validates it.
// A relative Snippets path is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if cfg.Snippets != "" && !filepath.IsAbs(cfg.Snippets) {
		cfg.Snippets = filepath.Join(filepath.Dir(path), cfg.Snippets)
	}

	log.Debug("Loaded config from %s", path)
	return cfg, nil
}

// Parse decodes config data in the format named by ext (.yaml, .yml,
// .json or .jsonc) over the defaults and validates the result
func Parse(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
