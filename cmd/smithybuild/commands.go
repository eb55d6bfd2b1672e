package main

import (
	"context"
	"fmt"
	"os"

	"github.com/juju/gnuflag"
	"github.com/sdkgen-dev/smithybuild"
	"github.com/sdkgen-dev/smithybuild/application/config"
	"github.com/sdkgen-dev/smithybuild/application/pipeline"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
)

// loadConfig loads the configuration file named by --config with the
// command's overrides applied.
func (a *app) loadConfig(overrides ...entities.ConfigOption) (entities.GeneratorConfig, error) {
	return config.Load(a.configPath, config.WithOverrides(overrides...))
}

type generateCommand struct {
	models        string
	output        string
	generator     string
	modulePrefix  string
	moduleVersion string
	workers       int
	indent        int
}

func (c *generateCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.models, "models", "", "directory of model documents")
	f.StringVar(&c.output, "output", "", "manifest path (default smithy-build.json)")
	f.StringVar(&c.generator, "generator", "", "code generator plugin name (default go-codegen)")
	f.StringVar(&c.modulePrefix, "module-prefix", "", "prefix of generated module paths")
	f.StringVar(&c.moduleVersion, "module-version", "", "module version of every projection")
	f.IntVar(&c.workers, "workers", 0, "number of documents validated concurrently")
	f.IntVar(&c.indent, "indent", -1, "indentation width of the manifest")
}

func (c *generateCommand) Run(ctx context.Context, a *app) error {
	cfg, err := a.loadConfig(
		entities.WithModelsDir(c.models),
		entities.WithOutput(c.output),
		entities.WithGenerator(c.generator),
		entities.WithModulePrefix(c.modulePrefix),
		entities.WithModuleVersion(c.moduleVersion),
		entities.WithWorkers(c.workers),
		entities.WithIndent(c.indent),
	)
	if err != nil {
		return err
	}
	logger, err := a.logger(cfg.LogLevel)
	if err != nil {
		return err
	}

	m, err := smithybuild.Generate(ctx, cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %d projection(s) to %s\n", m.Projections.Len(), cfg.Output)
	return nil
}

type normalizeCommand struct {
	models string
	dryRun bool
	yes    bool
	indent int
}

func (c *normalizeCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.models, "models", "", "directory of model documents")
	f.BoolVar(&c.dryRun, "dry-run", false, "list the documents that would change without writing them")
	f.BoolVar(&c.yes, "yes", false, "rewrite documents without asking for confirmation")
	f.IntVar(&c.indent, "indent", -1, "indentation width of rewritten documents")
}

func (c *normalizeCommand) Run(ctx context.Context, a *app) error {
	cfg, err := a.loadConfig(
		entities.WithModelsDir(c.models),
		entities.WithIndent(c.indent),
	)
	if err != nil {
		return err
	}
	logger, err := a.logger(cfg.LogLevel)
	if err != nil {
		return err
	}

	if !c.dryRun && !c.yes {
		if !a.prompter.IsInteractive() {
			return usagef("refusing to rewrite model documents without confirmation; pass --yes or --dry-run")
		}
		ok, err := a.prompter.Confirm(fmt.Sprintf("Rewrite the model documents in %s?", cfg.ModelsDir))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(a.stdout, "aborted")
			return nil
		}
	}

	report, err := smithybuild.Normalize(ctx, cfg,
		pipeline.WithLogger(logger),
		pipeline.WithDryRun(c.dryRun))
	if err != nil {
		return err
	}

	verb := "normalized"
	if c.dryRun {
		verb = "would normalize"
	}
	for _, path := range report.Changed {
		fmt.Fprintf(a.stdout, "%s %s\n", verb, path)
	}
	fmt.Fprintf(a.stdout, "%d changed, %d unchanged\n", len(report.Changed), len(report.Unchanged))
	return nil
}

type schemaCommand struct {
	output string
}

func (c *schemaCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.output, "output", "", "write the schema to this file instead of stdout")
}

func (c *schemaCommand) Run(_ context.Context, a *app) error {
	data, err := smithybuild.Schema()
	if err != nil {
		return err
	}
	if c.output == "" {
		_, err = a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(c.output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
