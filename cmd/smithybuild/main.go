// Command smithybuild generates the smithy-build.json manifest of a directory
// of Smithy JSON AST models and normalizes the models for source control.
//
// Usage:
//
//	smithybuild [--config FILE] [--env-file FILE] [--log-level LEVEL] [--json-errors] <command> [flags]
//
// Commands:
//
//	generate   write smithy-build.json for the models directory
//	normalize  strip smithy.api#default traits from the models in place
//	schema     print the JSON schema of smithy-build.json
package main

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/juju/gnuflag"
	"github.com/sdkgen-dev/smithybuild"
	"github.com/sdkgen-dev/smithybuild/domain/ports"
	"github.com/sdkgen-dev/smithybuild/infrastructure/prompter"
	"github.com/sdkgen-dev/smithybuild/log"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app holds the global flags and the streams of one invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	prompter ports.Prompter

	configPath string
	envFile    string
	logLevel   string
	jsonErrors bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		prompter: prompter.NewCliPrompter(stdin, stderr),
	}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	flags := gnuflag.NewFlagSet("smithybuild", gnuflag.ContinueOnError)
	flags.SetOutput(a.stderr)
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.envFile, "env-file", ".env", "file of environment variables loaded when present")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&a.jsonErrors, "json-errors", false, "print errors as JSON")
	flags.Usage = func() {
		fmt.Fprintln(a.stderr, "usage: smithybuild [flags] <generate|normalize|schema> [command flags]")
		flags.PrintDefaults()
	}

	if err := flags.Parse(false, args); err != nil {
		if stdErrors.Is(err, gnuflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	if err := a.loadEnv(); err != nil {
		return a.fail(err)
	}

	var cmd command
	switch name := flags.Arg(0); name {
	case "generate":
		cmd = &generateCommand{}
	case "normalize":
		cmd = &normalizeCommand{}
	case "schema":
		cmd = &schemaCommand{}
	default:
		return a.fail(usagef("unknown command %q", name))
	}

	cmdFlags := gnuflag.NewFlagSet("smithybuild "+flags.Arg(0), gnuflag.ContinueOnError)
	cmdFlags.SetOutput(a.stderr)
	cmd.SetFlags(cmdFlags)
	if err := cmdFlags.Parse(true, flags.Args()[1:]); err != nil {
		if stdErrors.Is(err, gnuflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if cmdFlags.NArg() > 0 {
		return a.fail(usagef("unexpected arguments: %v", cmdFlags.Args()))
	}

	if err := cmd.Run(ctx, a); err != nil {
		return a.fail(err)
	}
	return exitOK
}

// command is one smithybuild subcommand.
type command interface {
	SetFlags(f *gnuflag.FlagSet)
	Run(ctx context.Context, a *app) error
}

func (a *app) loadEnv() error {
	if a.envFile == "" {
		return nil
	}
	if err := godotenv.Load(a.envFile); err != nil && !stdErrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", a.envFile, err)
	}
	return nil
}

// logger builds the logger of the run. The --log-level flag wins over the
// configured level.
func (a *app) logger(configured string) (*slog.Logger, error) {
	name := configured
	if a.logLevel != "" {
		name = a.logLevel
	}
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, usagef("%v", err)
	}
	return log.NewLogger(log.WithWriter(a.stderr), log.WithLevel(level)), nil
}

// fail reports err and returns the matching exit code.
func (a *app) fail(err error) int {
	code := exitError
	var ue *usageError
	if stdErrors.As(err, &ue) {
		code = exitUsage
	}

	if a.jsonErrors {
		enc := json.NewEncoder(a.stderr)
		enc.SetEscapeHTML(false)
		if encErr := enc.Encode(smithybuild.ToErrorDetail(err)); encErr == nil {
			return code
		}
	}
	fmt.Fprintf(a.stderr, "smithybuild: %v\n", err)
	return code
}
