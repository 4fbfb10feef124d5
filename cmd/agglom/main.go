// Command agglom builds hierarchical clustering trees from distance matrices.
//
// Usage:
//
//	agglom [flags] FILE...
//
// Each FILE is read as PHYLIP, CSV, JSON or YAML (by extension, or
// -input-format) and one tree per file is written in Newick, JSON or msgpack
// to -out (a directory, or "-" for stdout). With -cut k the flat k-cluster
// assignment is printed as "label<TAB>cluster" lines instead.
//
// Settings come from defaults, then -config YAML, then AGGLOM_* variables,
// then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/agglom/internal/config"
	"github.com/katalvlaran/agglom/internal/logging"
	"github.com/katalvlaran/agglom/linkage"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1 // at least one input failed
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without process globals.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, files, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "agglom:", err)

		return exitUsage
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "agglom:", err)

		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	r, err := newRunner(cfg, log, stdin, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "agglom:", err)

		return exitFail
	}
	defer r.Close()

	if err = r.Run(ctx, files); err != nil {
		fmt.Fprintln(stderr, "agglom:", err)

		return exitFail
	}

	return exitOK
}

// parseArgs layers flags over the loaded configuration and validates it.
func parseArgs(args []string, stderr io.Writer) (*config.Config, []string, error) {
	fl := config.Default()
	fs := flag.NewFlagSet("agglom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: agglom [flags] FILE...\n\nlinkages: %v\n\nflags:\n", linkage.Names())
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "YAML settings file")
	fs.StringVar(&fl.Linkage, "linkage", fl.Linkage, "formula set: upgma, wpgma, single, complete, nj")
	fs.StringVar(&fl.InputFormat, "input-format", fl.InputFormat, "matrix format (default: by extension): phylip, csv, json, yaml")
	fs.StringVar(&fl.Format, "format", fl.Format, "tree format: newick, json, msgpack")
	fs.IntVar(&fl.Precision, "precision", fl.Precision, "Newick decimals (-1 = shortest exact)")
	fs.StringVar(&fl.Out, "out", fl.Out, `output directory, or "-" for stdout`)
	fs.StringVar(&fl.Outgroup, "outgroup", fl.Outgroup, "leaf label or index joined last at the root")
	fs.BoolVar(&fl.Clamp, "clamp", fl.Clamp, "clamp negative branch lengths to zero")
	fs.Float64Var(&fl.Epsilon, "epsilon", fl.Epsilon, "symmetry tolerance")
	fs.IntVar(&fl.Cut, "cut", fl.Cut, "print a flat k-cluster assignment instead of the tree (0 = off)")
	fs.StringVar(&fl.Store, "store", fl.Store, "badger directory caching built trees (empty = off)")
	fs.IntVar(&fl.CacheSize, "cache-size", fl.CacheSize, "in-process LRU size in front of -store (0 = off)")
	fs.StringVar(&fl.MetricsFile, "metrics-file", fl.MetricsFile, "write Prometheus textfile metrics here")
	fs.StringVar(&fl.LogLevel, "log-level", fl.LogLevel, "debug, info, warn, error")
	fs.StringVar(&fl.Environment, "env", fl.Environment, "development or production (log format)")
	fs.IntVar(&fl.Parallel, "parallel", fl.Parallel, "inputs processed concurrently")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "linkage":
			cfg.Linkage = fl.Linkage
		case "input-format":
			cfg.InputFormat = fl.InputFormat
		case "format":
			cfg.Format = fl.Format
		case "precision":
			cfg.Precision = fl.Precision
		case "out":
			cfg.Out = fl.Out
		case "outgroup":
			cfg.Outgroup = fl.Outgroup
		case "clamp":
			cfg.Clamp = fl.Clamp
		case "epsilon":
			cfg.Epsilon = fl.Epsilon
		case "cut":
			cfg.Cut = fl.Cut
		case "store":
			cfg.Store = fl.Store
		case "cache-size":
			cfg.CacheSize = fl.CacheSize
		case "metrics-file":
			cfg.MetricsFile = fl.MetricsFile
		case "log-level":
			cfg.LogLevel = fl.LogLevel
		case "env":
			cfg.Environment = fl.Environment
		case "parallel":
			cfg.Parallel = fl.Parallel
		}
	})
	if err = cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()

		return nil, nil, errors.New("no input files")
	}

	return cfg, fs.Args(), nil
}
