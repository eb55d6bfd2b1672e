// Package config loads and validates the configuration of a smithybuild run.
package config

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sdkgen-dev/smithybuild/application/template"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
	"github.com/sdkgen-dev/smithybuild/domain/ports"
	"github.com/sdkgen-dev/smithybuild/infrastructure/parser"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key instead of the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type loadConfig struct {
	env       map[string]string
	parser    ports.ConfigParser
	overrides []entities.ConfigOption
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		env:    Environment(),
		parser: parser.NewYamlConfigParser(),
	}
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithEnvironment replaces the variables available to the config template
// as {{ .env.NAME }}.
func WithEnvironment(env map[string]string) LoadOption {
	return func(c *loadConfig) {
		c.env = env
	}
}

// WithParser replaces the config file parser.
func WithParser(p ports.ConfigParser) LoadOption {
	return func(c *loadConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithOverrides applies opts after the config file, usually from CLI flags.
func WithOverrides(opts ...entities.ConfigOption) LoadOption {
	return func(c *loadConfig) {
		c.overrides = append(c.overrides, opts...)
	}
}

// Load builds the configuration of a run. Defaults are overlaid by the file
// at path, if any, and then by the overrides. The file is rendered as a
// template first. The result is validated.
func Load(path string, opts ...LoadOption) (entities.GeneratorConfig, error) {
	lc := defaultLoadConfig()
	for _, opt := range opts {
		opt(&lc)
	}

	cfg := entities.DefaultGeneratorConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}

		engine := template.NewGoTemplateEngine(template.WithName(filepath.Base(path)))
		rendered, err := engine.Render(raw, map[string]interface{}{"env": lc.env})
		if err != nil {
			return cfg, &errors.ConfigError{Err: err}
		}

		if err := lc.parser.Parse(rendered, &cfg); err != nil {
			return cfg, &errors.ConfigError{Err: fmt.Errorf("%s: %w", path, err)}
		}
	}

	cfg.Apply(lc.overrides...)

	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags. The first failing field is
// reported as a ConfigError.
func Validate(cfg *entities.GeneratorConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &errors.ConfigError{
			Field: fe.Field(),
			Err:   fmt.Errorf("value %v does not satisfy %q", fe.Value(), ruleOf(fe)),
		}
	}
	return &errors.ConfigError{Err: err}
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Environment returns the process environment as a map.
func Environment() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
