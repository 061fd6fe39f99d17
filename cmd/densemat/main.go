// SPDX-License-Identifier: MIT

// Command densemat generates, converts, multiplies and inverts dense
// matrices stored as text (.csv/.txt/.tsv), binary (.bin) or JSON (.json).
//
// Usage:
//
//	densemat [-v] <command> [flags]
//
// Commands:
//
//	gen      write a uniform(-10,10) random matrix
//	convert  re-encode a matrix; formats follow the file extensions
//	mul      multiply two matrices
//	inv      invert a square matrix and print its determinant
//	bench    multiply, accumulate and round-trip arrays of random matrices
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
)

// errUsage marks errors caused by bad invocation; the usage text has already
// been printed.
var errUsage = errors.New("usage error")

// command is one subcommand; run receives the arguments after its name.
type command struct {
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

// env carries the process-level dependencies shared by every command.
type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

var commands = map[string]command{
	"gen":     {"write a uniform(-10,10) random matrix", runGen},
	"convert": {"re-encode a matrix; formats follow the file extensions", runConvert},
	"mul":     {"multiply two matrices", runMul},
	"inv":     {"invert a square matrix and print its determinant", runInv},
	"bench":   {"multiply, accumulate and round-trip arrays of random matrices", runBench},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "densemat:", err)
		}
		os.Exit(1)
	}
}

// run parses the global flags, builds the logger and dispatches to a command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("densemat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log debug details to stderr")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	e := &env{
		stdout: stdout,
		stderr: stderr,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "densemat: unknown command %q\n", name)
		fs.Usage()
		return errUsage
	}
	e.log.Debug("command", slog.String("name", name), slog.Any("args", fs.Args()[1:]))

	return cmd.run(ctx, e, fs.Args()[1:])
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: densemat [-v] <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "global flags:")
	fs.PrintDefaults()
}
