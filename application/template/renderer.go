// Package template renders configuration files through text/template.
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/sdkgen-dev/smithybuild/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	name   string
	strict bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		name:   "config",
		strict: true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), template rendering fails if a referenced key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// WithName sets the template name reported in errors, usually the file name.
func WithName(name string) TemplateOption {
	return func(c *templateConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// GoTemplateEngine implements TemplateEngine using standard text/template.
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// funcs are available to every template.
var funcs = template.FuncMap{
	// default returns def when value is empty: {{ .env.MODELS | default "models" }}
	"default": func(def string, value interface{}) string {
		if s, ok := value.(string); ok && s != "" {
			return s
		}
		return def
	},
}

// Render executes raw as a template with data as its dot value.
func (e *GoTemplateEngine) Render(raw []byte, data map[string]interface{}) ([]byte, error) {
	tmpl := template.New(e.config.name).Funcs(funcs)

	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
