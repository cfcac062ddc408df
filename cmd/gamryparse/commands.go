package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"gamrycli/internal/config"
	"gamrycli/internal/experiments"
	"gamrycli/internal/exporter"
	"gamrycli/internal/files"
	"gamrycli/internal/infrastructure"
	"gamrycli/internal/validation"
	"gamrycli/pkg/contracts/domain"
)

func runInfo(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	curve := fs.Int("curve", 0, "0-based index of the curve to describe")
	timestamps := fs.Bool("timestamps", false, "convert the T column to absolute times")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "info: exactly one FILE is required")
		return exitUsage
	}
	path := fs.Arg(0)
	logger := infrastructure.WithFile(a.logger, path)

	if err := validation.NewFileValidator(logger).ValidateDTAFile(path); err != nil {
		a.fail(path, err)
		return exitFailure
	}
	view, err := experiments.Open(ctx, path, a.loadOptions(logger, *timestamps)...)
	if err != nil {
		a.fail(path, err)
		return exitFailure
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	writeSummary(tw, view.Summary())
	if view.Result().CurveCount() > 0 {
		t, err := view.Curve(*curve)
		if err != nil {
			tw.Flush()
			a.fail(path, err)
			return exitFailure
		}
		writeCurve(tw, *curve, t)
	}
	if err := tw.Flush(); err != nil {
		a.fail(path, err)
		return exitFailure
	}
	return exitOK
}

func writeSummary(w io.Writer, s experiments.Summary) {
	fmt.Fprintf(w, "file:\t%s\n", s.Source)
	fmt.Fprintf(w, "experiment:\t%s (%s)\n", s.Experiment, s.Kind)
	fmt.Fprintf(w, "curves:\t%d\n", s.Curves)
	fmt.Fprintf(w, "columns:\t%s\n", strings.Join(s.Columns, ", "))
	for _, p := range s.Properties {
		value := p.Value
		if !p.Present {
			value = "n/a"
		}
		fmt.Fprintf(w, "%s:\t%s\n", p.Name, value)
	}
}

// writeCurve prints the row count and the achieved range of the first
// numeric column of curve i.
func writeCurve(w io.Writer, i int, t *domain.Table) {
	fmt.Fprintf(w, "curve %d rows:\t%d\n", i, t.Len())
	for _, c := range t.Columns() {
		if !c.IsNumeric() {
			continue
		}
		lo, hi, err := t.Range(c.Name)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "%s range:\t[%g, %g] %s\n", c.Name, lo, hi, c.Unit)
		return
	}
}

func runExport(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	formatName := fs.String("format", a.cfg.Export.Format, "output format: csv | xlsx")
	out := fs.String("out", a.cfg.Export.OutputDir, "output directory")
	timestamps := fs.Bool("timestamps", false, "convert the T column to absolute times")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(a.stderr, "export: at least one FILE is required")
		return exitUsage
	}
	format, err := exporter.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(a.stderr, "export: %v\n", err)
		return exitUsage
	}
	if err := validation.NewFileValidator(a.logger).ValidateOutputDirectory(*out); err != nil {
		a.fail("", err)
		return exitFailure
	}

	failed := 0
	for _, path := range fs.Args() {
		written, err := a.exportFile(ctx, path, format, *out, *timestamps)
		if err != nil {
			a.fail(path, err)
			failed++
			continue
		}
		printWritten(a.stdout, path, written)
	}
	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

func runBatch(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dir := fs.String("dir", ".", "directory to scan for DTA files")
	pattern := fs.String("pattern", a.cfg.Batch.Pattern, "file name pattern, matched case-insensitively")
	workers := fs.Int("workers", a.cfg.Batch.Workers, "number of files processed concurrently")
	formatName := fs.String("format", a.cfg.Export.Format, "output format: csv | xlsx")
	out := fs.String("out", a.cfg.Export.OutputDir, "output directory")
	timestamps := fs.Bool("timestamps", false, "convert the T column to absolute times")
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(a.stderr, "batch: unexpected arguments, use -dir")
		return exitUsage
	}
	if *workers < 1 || *workers > config.MaxWorkers {
		fmt.Fprintf(a.stderr, "batch: -workers must be between 1 and %d\n", config.MaxWorkers)
		return exitUsage
	}
	format, err := exporter.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(a.stderr, "batch: %v\n", err)
		return exitUsage
	}

	validator := validation.NewFileValidator(a.logger)
	if err := validator.ValidateInputDirectory(*dir); err != nil {
		a.fail("", err)
		return exitFailure
	}
	if err := validator.ValidateOutputDirectory(*out); err != nil {
		a.fail("", err)
		return exitFailure
	}

	found, err := files.NewDiscovery("").FindDTAFiles(*dir, *pattern)
	if err != nil {
		a.fail("", err)
		return exitFailure
	}
	a.logger.InfoContext(ctx, "starting batch",
		slog.String("directory", *dir),
		slog.Int("files", len(found)),
		slog.Int("workers", *workers),
		slog.String("format", string(format)))
	if len(found) == 0 {
		fmt.Fprintf(a.stdout, "no files matching %s in %s\n", *pattern, *dir)
		return exitOK
	}

	type outcome struct {
		written []string
		err     error
	}
	outcomes := make([]outcome, len(found))

	// Failures stay per file; the group only bounds concurrency
	var g errgroup.Group
	g.SetLimit(*workers)
	for i, f := range found {
		g.Go(func() error {
			written, err := a.exportFile(ctx, f.Path, format, *out, *timestamps)
			outcomes[i] = outcome{written: written, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, f := range found {
		if err := outcomes[i].err; err != nil {
			a.fail(f.Path, err)
			failed++
			continue
		}
		printWritten(a.stdout, f.Path, outcomes[i].written)
	}
	fmt.Fprintf(a.stdout, "processed %d files, %d failed\n", len(found), failed)
	a.logger.InfoContext(ctx, "batch complete",
		slog.Int("files", len(found)),
		slog.Int("failed", failed))

	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// exportFile validates, loads and exports one DTA file
func (a *app) exportFile(ctx context.Context, path string, format exporter.Format, outDir string, timestamps bool) ([]string, error) {
	logger := infrastructure.WithFile(a.logger, path)
	if err := validation.NewFileValidator(logger).ValidateDTAFile(path); err != nil {
		return nil, err
	}
	view, err := experiments.Open(ctx, path, a.loadOptions(logger, timestamps)...)
	if err != nil {
		return nil, err
	}

	switch format {
	case exporter.FormatXLSX:
		written, err := exporter.NewXLSXWriter(outDir, logger).ExportResult(view.Result())
		if err != nil {
			return nil, err
		}
		return []string{written}, nil
	default:
		return exporter.NewCSVWriter(outDir, a.cfg.Export.BOM, logger).ExportResult(view.Result())
	}
}

func printWritten(w io.Writer, path string, written []string) {
	fmt.Fprintf(w, "%s -> %s\n", path, strings.Join(written, ", "))
}
