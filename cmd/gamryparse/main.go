package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gamrycli/internal/config"
	"gamrycli/internal/dataprocessing"
	"gamrycli/internal/infrastructure"
	"gamrycli/pkg/contracts"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type command func(ctx context.Context, a *app, args []string) int

var commands = map[string]command{
	"info":   runInfo,
	"export": runExport,
	"batch":  runBatch,
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: %s [-config FILE] <command> [flags] [args]

Commands:
  info     [-curve N] [-timestamps] FILE
  export   [-format csv|xlsx] [-out DIR] [-timestamps] FILE...
  batch    [-dir DIR] [-pattern GLOB] [-workers N] [-format csv|xlsx] [-out DIR]
  version  [-json]

Global flags:
`, config.AppName)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "config file (defaults to ./"+config.DefaultConfigFile+" when present)")
	global.Usage = func() {
		usage(stderr)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return parseExit(err)
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	name, cmdArgs := global.Arg(0), global.Args()[1:]
	if name == "version" {
		return runVersion(cmdArgs, stdout, stderr)
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		global.Usage()
		return exitUsage
	}

	a, err := newApp(*configPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitFailure
	}
	defer a.close(context.WithoutCancel(ctx))

	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := a.tracing.Tracer.Start(ctx, config.AppName+"."+name)
	defer span.End()

	a.logger = infrastructure.WithComponent(a.logger, name)
	return cmd(ctx, a, cmdArgs)
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print build details as JSON")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if !*asJSON {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contracts.GetVersionInfo()); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitFailure
	}
	return exitOK
}

// parseExit maps a flag parse error to an exit code. -h is not an error.
func parseExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	return exitUsage
}

// app carries the state shared by every command
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracing *infrastructure.TracingProvider
	metrics *infrastructure.LoadMetrics
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(configPath string, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Spans go to stderr so stdout stays parseable
	tp, err := infrastructure.InitializeTracing(cfg.Telemetry, stderr, logger)
	if err != nil {
		_ = infrastructure.CloseLogFile()
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		tracing: tp,
		metrics: infrastructure.NewLoadMetrics(),
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if path := a.cfg.Telemetry.MetricsFile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Error("failed to write metrics", slog.String("error", err.Error()))
		}
	}
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.logger.Error("failed to shut down tracing", slog.String("error", err.Error()))
	}
	_ = infrastructure.CloseLogFile()
}

// loadOptions builds the parser options from the config. timestamps forces
// timestamp conversion on even when the config leaves it off.
func (a *app) loadOptions(logger *slog.Logger, timestamps bool) []dataprocessing.Option {
	opts := []dataprocessing.Option{
		dataprocessing.WithLocale(a.cfg.Parse.Locale),
		dataprocessing.WithTimestamps(timestamps || a.cfg.Parse.Timestamps),
		dataprocessing.WithLogger(logger),
		dataprocessing.WithRecorder(a.metrics),
		dataprocessing.WithTracer(a.tracing.Tracer),
	}
	if len(a.cfg.Parse.CurvePrefixes) > 0 {
		opts = append(opts, dataprocessing.WithCurvePrefixes(a.cfg.Parse.CurvePrefixes...))
	}
	return opts
}

// fail reports err for path on stderr and in the log
func (a *app) fail(path string, err error) {
	a.logger.Error("command failed",
		slog.String("file", path),
		slog.String("error", err.Error()))
	if path != "" {
		fmt.Fprintf(a.stderr, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(a.stderr, "%s: %v\n", config.AppName, err)
}
