package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/leviathan-engine/filegen/internal/app"
	"github.com/leviathan-engine/filegen/internal/core/definitions"
	"github.com/leviathan-engine/filegen/internal/core/observability/log"
	"github.com/leviathan-engine/filegen/internal/injector"
)

const usage = `usage: filegen [-v] [-log level] [-j workers] <command> [args]

commands:
  world <out> [bindings-out]   standard world header and implementation
  responses <out>              network response classes
  states <out>                 component state classes
  manifest <file>              every target of a yaml or json manifest
  list                         registered builtin targets
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "filegen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("filegen", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(flags.Output(), usage) }

	verbose := flags.Bool("v", false, "debug logging")
	level := flags.String("log", "info", "log level (debug, info, warn, error)")
	workers := flags.Int("j", 0, "targets generated at once, 0 for no limit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	logLevel := log.ParseLevel(*level)
	if *verbose {
		logLevel = log.LevelDebug
	}

	a, err := injector.InitializeApp(logLevel)
	if err != nil {
		return err
	}
	a.SetWorkers(*workers)
	defer log.Provide().Sync()

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return fmt.Errorf("no command given")
	}

	return dispatch(ctx, a, rest[0], rest[1:], stdout)
}

func dispatch(ctx context.Context, a *app.App, command string, args []string, stdout io.Writer) error {
	switch command {
	case "world":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("world: expected <out> [bindings-out]")
		}
		bindings := ""
		if len(args) == 2 {
			bindings = args[1]
		}
		_, err := a.Builtin(ctx, definitions.TargetStandardWorld, args[0], bindings)
		return err

	case "responses":
		if len(args) != 1 {
			return fmt.Errorf("responses: expected <out>")
		}
		_, err := a.Builtin(ctx, definitions.TargetResponses, args[0], "")
		return err

	case "states":
		if len(args) != 1 {
			return fmt.Errorf("states: expected <out>")
		}
		_, err := a.Builtin(ctx, definitions.TargetComponentStates, args[0], "")
		return err

	case "manifest":
		if len(args) != 1 {
			return fmt.Errorf("manifest: expected <file>")
		}
		_, err := a.Manifest(ctx, args[0])
		return err

	case "list":
		for _, name := range a.Registry().Names() {
			b, err := a.Registry().Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%-18s %-28s %s\n", b.Name, b.Config.Output, b.Description)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
