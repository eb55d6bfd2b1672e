package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/sdkgen-dev/smithybuild/application/manifest"
	"github.com/sdkgen-dev/smithybuild/application/validation"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
	"github.com/sdkgen-dev/smithybuild/domain/ports"
	"github.com/sdkgen-dev/smithybuild/infrastructure/parser"
	"golang.org/x/sync/errgroup"
)

// Generator writes the smithy-build.json manifest for a directory of models.
type Generator struct {
	store     ports.DocumentStore
	output    string
	outputAbs string // Never read back as a model
	opts      options
}

// NewGenerator creates a Generator reading models from store and writing the
// manifest to output.
func NewGenerator(store ports.DocumentStore, output string, opts ...Option) (*Generator, error) {
	outputAbs, err := filepath.Abs(output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output %s: %w", output, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = parser.NewJSONCodec(parser.WithIndent(o.indent))
	}
	if o.serviceValidator == nil {
		o.serviceValidator = validation.NewServiceModelValidator()
	}
	if o.manifestValidator == nil {
		v, err := validation.NewManifestValidator()
		if err != nil {
			return nil, err
		}
		o.manifestValidator = v
	}
	return &Generator{store: store, output: output, outputAbs: outputAbs, opts: o}, nil
}

// projection is a loaded model document ready to be added to the manifest.
type projection struct {
	key   entities.ProjectionKey
	entry entities.ProjectionEntry
}

// Run loads every model document and writes the manifest. Documents are added
// in discovery order whatever the number of workers. The manifest is only
// written when every document is valid.
func (g *Generator) Run(ctx context.Context) (*entities.Manifest, error) {
	logger := g.opts.logger.With("models", g.store.Root())

	paths, err := g.store.List()
	if err != nil {
		return nil, err
	}
	paths = slices.DeleteFunc(paths, func(path string) bool {
		return filepath.Clean(path) == g.outputAbs
	})
	logger.Debug("model documents found", "count", len(paths), "workers", g.opts.workers)

	projections, errs := g.loadAll(ctx, paths)

	builder := manifest.NewBuilder()
	for i := range paths {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if err := builder.AddProjection(projections[i].key, projections[i].entry); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := builder.Build()
	data, err := manifest.Serialize(m, manifest.WithIndent(g.opts.indent))
	if err != nil {
		return nil, err
	}

	result, err := g.opts.manifestValidator.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to validate manifest: %w", err)
	}
	if !result.Valid {
		return nil, &errors.ManifestValidationError{Violations: result.Errors}
	}

	if err := g.store.Write(g.output, data); err != nil {
		return nil, err
	}
	logger.Info("manifest written", "output", g.output, "projections", m.Projections.Len())
	return m, nil
}

// loadAll loads paths, concurrently when more than one worker is configured.
// Results and errors are indexed like paths. Once a document fails no further
// documents are scheduled; their slots stay empty.
func (g *Generator) loadAll(ctx context.Context, paths []string) ([]projection, []error) {
	projections := make([]projection, len(paths))
	errs := make([]error, len(paths))

	if g.opts.workers <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				break
			}
			projections[i], errs[i] = g.load(path)
			if errs[i] != nil {
				break
			}
		}
		return projections, errs
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.workers)
	for i, path := range paths {
		if err := egCtx.Err(); err != nil {
			// Cancelled by the caller, or by a failed document scheduled earlier.
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
			}
			break
		}
		eg.Go(func() error {
			projections[i], errs[i] = g.load(path)
			return errs[i]
		})
	}
	_ = eg.Wait() // errors are collected per document
	return projections, errs
}

// load reads, decodes and validates one model document.
func (g *Generator) load(path string) (projection, error) {
	name := filepath.Base(path)

	data, err := g.store.Read(path)
	if err != nil {
		return projection{}, err
	}

	root, err := g.opts.codec.Decode(name, data)
	if err != nil {
		return projection{}, err
	}

	doc := &entities.ServiceDocument{Name: name, Path: path, Root: root}
	serviceID, err := g.opts.serviceValidator.Validate(doc)
	if err != nil {
		return projection{}, err
	}

	key, err := manifest.DeriveProjectionKey(name)
	if err != nil {
		return projection{}, err
	}

	g.opts.logger.Debug("model document validated",
		slog.String("file", name),
		slog.String("service", serviceID),
		slog.String("projection", key.String()))

	return projection{
		key:   key,
		entry: manifest.NewProjectionEntry(path, serviceID, key, g.opts.plugin),
	}, nil
}
