package manifest

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = validator.New()

type builderConfig struct {
	validate *validator.Validate
}

func defaultBuilderConfig() builderConfig {
	return builderConfig{validate: validate}
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderConfig)

// WithValidator replaces the validator used to check projection entries.
func WithValidator(v *validator.Validate) BuilderOption {
	return func(c *builderConfig) {
		if v != nil {
			c.validate = v
		}
	}
}

// Builder accumulates projections for one manifest. It is safe for
// concurrent use.
type Builder struct {
	mu       sync.Mutex
	validate *validator.Validate
	manifest *entities.Manifest
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{
		validate: cfg.validate,
		manifest: entities.NewManifest(),
	}
}

// AddProjection registers entry under key. A key can only be added once.
func (b *Builder) AddProjection(key entities.ProjectionKey, entry entities.ProjectionEntry) error {
	if err := b.validate.Struct(entry); err != nil {
		return &errors.SchemaError{Type: "ProjectionEntry", Err: err}
	}

	name := key.String()

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.manifest.Projections.Get(name); ok {
		return &errors.DuplicateKeyError{
			Key:    name,
			First:  existing.Imports[0],
			Second: entry.Imports[0],
		}
	}
	b.manifest.Projections.Set(name, entry)
	return nil
}

// Len returns the number of projections added so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.manifest.Projections.Len()
}

// Build returns the manifest with projections in the order they were added.
// The returned manifest is a snapshot; later additions do not affect it.
func (b *Builder) Build() *entities.Manifest {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := entities.NewManifest()
	for _, name := range b.manifest.Projections.Keys() {
		entry, _ := b.manifest.Projections.Get(name)
		m.Projections.Set(name, entry)
	}
	return m
}
