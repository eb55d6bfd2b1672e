package pipeline

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/sdkgen-dev/smithybuild/application/normalize"
	"github.com/sdkgen-dev/smithybuild/domain/ports"
	"github.com/sdkgen-dev/smithybuild/infrastructure/parser"
)

// Report lists the documents visited by a Normalizer run.
type Report struct {
	// Changed holds the documents that were (or, in a dry run, would be) rewritten.
	Changed []string
	// Unchanged holds the documents already in normal form.
	Unchanged []string
}

// Normalizer rewrites model documents in place with the default trait removed.
type Normalizer struct {
	store ports.DocumentStore
	opts  options
}

// NewNormalizer creates a Normalizer for the documents of store.
func NewNormalizer(store ports.DocumentStore, opts ...Option) *Normalizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = parser.NewJSONCodec(parser.WithIndent(o.indent))
	}
	return &Normalizer{store: store, opts: o}
}

// Run normalizes every document. A document is only written when its bytes
// change. The first failing document aborts the run; documents rewritten
// before it stay rewritten.
func (n *Normalizer) Run(ctx context.Context) (Report, error) {
	var report Report
	logger := n.opts.logger.With("models", n.store.Root(), "dryRun", n.opts.dryRun)

	paths, err := n.store.List()
	if err != nil {
		return report, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		changed, err := n.normalize(path)
		if err != nil {
			return report, err
		}
		if changed {
			report.Changed = append(report.Changed, path)
		} else {
			report.Unchanged = append(report.Unchanged, path)
		}
	}

	logger.Info("model documents normalized",
		"changed", len(report.Changed),
		"unchanged", len(report.Unchanged))
	return report, nil
}

func (n *Normalizer) normalize(path string) (bool, error) {
	name := filepath.Base(path)

	data, err := n.store.Read(path)
	if err != nil {
		return false, err
	}

	root, err := n.opts.codec.Decode(name, data)
	if err != nil {
		return false, err
	}

	out, err := n.opts.codec.Encode(normalize.Strip(root, n.opts.traitKey))
	if err != nil {
		return false, err
	}
	if bytes.Equal(out, data) {
		n.opts.logger.Debug("model document unchanged", "file", name)
		return false, nil
	}

	if !n.opts.dryRun {
		if err := n.store.Write(path, out); err != nil {
			return false, err
		}
	}
	n.opts.logger.Debug("model document normalized", "file", name)
	return true, nil
}
