// Package smithybuild generates smithy-build.json manifests for directories of
// Smithy JSON AST model documents, and normalizes those documents for
// committing to source control.
package smithybuild

import (
	"context"

	"github.com/sdkgen-dev/smithybuild/application/config"
	"github.com/sdkgen-dev/smithybuild/application/pipeline"
	"github.com/sdkgen-dev/smithybuild/application/schema"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
	"github.com/sdkgen-dev/smithybuild/infrastructure/filestore"
)

// Config holds the settings of a run.
type Config = entities.GeneratorConfig

// Manifest is a generated smithy-build.json document.
type Manifest = entities.Manifest

// Report lists the documents visited by Normalize.
type Report = pipeline.Report

// ErrorDetail is the structured form of an error, as printed with --json-errors.
// Error Types: "io", "config", "validation", "internal"
type ErrorDetail = entities.ErrorDetail

// Option tunes a Generator or a Normalizer beyond cfg.
type Option = pipeline.Option

// DefaultConfig returns the default configuration. ModelsDir must be set
// before it is valid.
func DefaultConfig() Config {
	return entities.DefaultGeneratorConfig()
}

// NewGenerator validates cfg and wires a Generator reading cfg.ModelsDir.
// opts are applied after the settings taken from cfg.
func NewGenerator(cfg Config, opts ...Option) (*pipeline.Generator, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewGenerator(store, cfg.Output, append(pipeline.FromConfig(cfg), opts...)...)
}

// NewNormalizer validates cfg and wires a Normalizer over cfg.ModelsDir.
func NewNormalizer(cfg Config, opts ...Option) (*pipeline.Normalizer, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewNormalizer(store, append(pipeline.FromConfig(cfg), opts...)...), nil
}

// Generate writes the manifest for cfg.ModelsDir to cfg.Output.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Manifest, error) {
	g, err := NewGenerator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}

// Normalize strips the default trait from every document of cfg.ModelsDir.
func Normalize(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	n, err := NewNormalizer(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return n.Run(ctx)
}

// Schema returns the JSON schema of the manifest.
func Schema() ([]byte, error) {
	return schema.ManifestSchema()
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *ErrorDetail {
	return errors.ToErrorDetail(err)
}

func openStore(cfg Config) (*filestore.FileStore, error) {
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return filestore.NewFileStore(cfg.ModelsDir,
		filestore.WithExtensions(cfg.Extensions...),
		filestore.WithExclude(cfg.Output),
	)
}
