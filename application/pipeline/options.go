// Package pipeline drives manifest generation and model normalization over a
// directory of model documents.
package pipeline

import (
	"io"
	"log/slog"

	"github.com/sdkgen-dev/smithybuild/application/manifest"
	"github.com/sdkgen-dev/smithybuild/application/normalize"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/ports"
)

// options holds the settings shared by Generator and Normalizer.
type options struct {
	logger            *slog.Logger
	codec             ports.DocumentCodec
	serviceValidator  ports.ServiceValidator
	manifestValidator ports.ManifestValidator
	plugin            manifest.PluginConfig
	indent            int
	workers           int
	traitKey          string
	dryRun            bool
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		plugin: manifest.PluginConfig{
			Generator:     entities.DefaultGenerator,
			ModulePrefix:  entities.DefaultModulePrefix,
			ModuleVersion: entities.DefaultModuleVersion,
		},
		indent:   entities.DefaultIndent,
		workers:  1,
		traitKey: normalize.DefaultTraitKey,
	}
}

// Option configures a Generator or a Normalizer.
type Option func(*options)

// WithLogger sets the logger. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCodec replaces the model document codec.
func WithCodec(codec ports.DocumentCodec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithServiceValidator replaces the validator locating the service of a document.
func WithServiceValidator(v ports.ServiceValidator) Option {
	return func(o *options) {
		if v != nil {
			o.serviceValidator = v
		}
	}
}

// WithManifestValidator replaces the validator run on the serialized manifest.
func WithManifestValidator(v ports.ManifestValidator) Option {
	return func(o *options) {
		if v != nil {
			o.manifestValidator = v
		}
	}
}

// WithPluginConfig sets the generator plugin written into every projection.
func WithPluginConfig(p manifest.PluginConfig) Option {
	return func(o *options) {
		o.plugin = p
	}
}

// WithIndent sets the indentation width of written JSON.
func WithIndent(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.indent = n
		}
	}
}

// WithWorkers sets how many documents are loaded concurrently. Default is 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTraitKey sets the member name removed by the Normalizer.
func WithTraitKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.traitKey = key
		}
	}
}

// WithDryRun makes the Normalizer report changes without writing them.
func WithDryRun(enabled bool) Option {
	return func(o *options) {
		o.dryRun = enabled
	}
}

// FromConfig translates cfg into options.
func FromConfig(cfg entities.GeneratorConfig) []Option {
	return []Option{
		WithPluginConfig(manifest.PluginConfigFrom(cfg)),
		WithIndent(cfg.Indent),
		WithWorkers(cfg.Workers),
	}
}
