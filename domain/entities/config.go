package entities

// Default settings of a generation run. They reproduce the projections the
// aws-sdk-go-v2 build produced before any of them became configurable.
const (
	DefaultGenerator     = "go-codegen"
	DefaultModulePrefix  = "github.com/aws/aws-sdk-go-v2/service/"
	DefaultModuleVersion = "1.0"
	DefaultOutput        = "smithy-build.json"
	DefaultIndent        = 4
)

// GeneratorConfig holds the settings of a manifest generation or
// normalization run.
type GeneratorConfig struct {
	// ModelsDir is the directory holding the model documents.
	ModelsDir string `json:"modelsDir" yaml:"modelsDir" validate:"required"`

	// Output is the path the manifest is written to.
	Output string `json:"output" yaml:"output" validate:"required"`

	// Generator is the plugin name used in every projection.
	Generator string `json:"generator" yaml:"generator" validate:"required"`

	// ModulePrefix is prepended to the sdkId to form the module path.
	ModulePrefix string `json:"modulePrefix" yaml:"modulePrefix" validate:"required"`

	// ModuleVersion is written as the moduleVersion of every projection.
	ModuleVersion string `json:"moduleVersion" yaml:"moduleVersion" validate:"required"`

	// Extensions restricts the files picked up from ModelsDir.
	Extensions []string `json:"extensions" yaml:"extensions" validate:"required,min=1,dive,startswith=."`

	// Indent is the number of spaces used when pretty printing JSON.
	Indent int `json:"indent" yaml:"indent" validate:"gte=0,lte=8"`

	// Workers bounds how many documents are decoded and validated at once.
	Workers int `json:"workers" yaml:"workers" validate:"gte=1,lte=64"`

	// LogLevel is the logging verbosity level (debug, info, warn, error).
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultGeneratorConfig returns the default configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:        DefaultOutput,
		Generator:     DefaultGenerator,
		ModulePrefix:  DefaultModulePrefix,
		ModuleVersion: DefaultModuleVersion,
		Extensions:    []string{".json"},
		Indent:        DefaultIndent,
		Workers:       1,
		LogLevel:      "info",
	}
}

// ConfigOption is a functional option for GeneratorConfig.
type ConfigOption func(*GeneratorConfig)

// WithModelsDir sets the directory the model documents are read from.
func WithModelsDir(dir string) ConfigOption {
	return func(c *GeneratorConfig) {
		if dir != "" {
			c.ModelsDir = dir
		}
	}
}

// WithOutput sets the manifest output path.
func WithOutput(path string) ConfigOption {
	return func(c *GeneratorConfig) {
		if path != "" {
			c.Output = path
		}
	}
}

// WithGenerator sets the generator plugin name.
func WithGenerator(name string) ConfigOption {
	return func(c *GeneratorConfig) {
		if name != "" {
			c.Generator = name
		}
	}
}

// WithModulePrefix sets the module path prefix.
func WithModulePrefix(prefix string) ConfigOption {
	return func(c *GeneratorConfig) {
		if prefix != "" {
			c.ModulePrefix = prefix
		}
	}
}

// WithModuleVersion sets the module version of every projection.
func WithModuleVersion(version string) ConfigOption {
	return func(c *GeneratorConfig) {
		if version != "" {
			c.ModuleVersion = version
		}
	}
}

// WithIndent sets the pretty printing indentation width.
func WithIndent(n int) ConfigOption {
	return func(c *GeneratorConfig) {
		if n >= 0 {
			c.Indent = n
		}
	}
}

// WithWorkers sets the number of concurrent validation workers.
func WithWorkers(n int) ConfigOption {
	return func(c *GeneratorConfig) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithLogLevel sets the logging verbosity level.
func WithLogLevel(level string) ConfigOption {
	return func(c *GeneratorConfig) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// NewGeneratorConfig creates a GeneratorConfig with the given options.
func NewGeneratorConfig(opts ...ConfigOption) GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts to c.
func (c *GeneratorConfig) Apply(opts ...ConfigOption) {
	for _, opt := range opts {
		opt(c)
	}
}
