package dataprocessing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "gamrycli/internal/dataprocessing"

// LoadStats summarizes one Load call for a Recorder.
type LoadStats struct {
	Source     string
	Experiment string
	Curves     int
	Rows       int
	Aborted    bool
	Duration   time.Duration
	Err        error
}

// Recorder observes completed loads. Implementations must be safe for
// concurrent use when loads run in parallel.
type Recorder interface {
	ObserveLoad(stats LoadStats)
}

type options struct {
	convention DecimalConvention
	timestamps bool
	sentinels  SentinelSet
	logger     *slog.Logger
	recorder   Recorder
	tracer     trace.Tracer
	err        error
}

// Option configures a load.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		convention: PointDecimal,
		sentinels:  NewSentinelSet(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// WithConvention sets the number convention the file was written in.
// The default is PointDecimal.
func WithConvention(c DecimalConvention) Option {
	return func(o *options) { o.convention = c }
}

// WithLocale derives the number convention from a locale name. An unknown
// locale makes the load fail.
func WithLocale(name string) Option {
	return func(o *options) {
		c, err := ConventionForLocale(name)
		if err != nil {
			o.err = apperrors.NewConfigError("locale", err)
			return
		}
		o.convention = c
	}
}

// WithTimestamps converts the T column of every curve to absolute times.
func WithTimestamps(enabled bool) Option {
	return func(o *options) { o.timestamps = enabled }
}

// WithCurvePrefixes registers additional instrument-family table prefixes.
// Repeated calls accumulate.
func WithCurvePrefixes(prefixes ...string) Option {
	return func(o *options) { o.sentinels = o.sentinels.With(prefixes...) }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder attaches a load observer.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// Load parses the DTA file at path. Every call returns a fresh result; the
// file is opened once and scanned twice, header first.
func Load(ctx context.Context, path string, opts ...Option) (*domain.ParseResult, error) {
	o := newOptions(opts)

	ctx, span := o.tracer.Start(ctx, "dataprocessing.Load", trace.WithAttributes(attribute.String("gamry.source", path)))
	defer span.End()

	start := time.Now()
	result, aborted, err := load(ctx, path, o)

	stats := LoadStats{Source: path, Duration: time.Since(start), Err: err, Aborted: aborted}
	if result != nil {
		stats.Experiment, _ = result.ExperimentType()
		stats.Curves = result.CurveCount()
		for _, t := range result.Curves() {
			stats.Rows += t.Len()
		}
	}
	if o.recorder != nil {
		o.recorder.ObserveLoad(stats)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.ErrorContext(ctx, "load failed", slog.String("source", path), slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("gamry.experiment", stats.Experiment),
		attribute.Int("gamry.curve_count", stats.Curves),
		attribute.Int("gamry.row_count", stats.Rows),
	)
	o.logger.InfoContext(ctx, "load complete",
		slog.String("source", path),
		slog.String("experiment", stats.Experiment),
		slog.Int("curve_count", stats.Curves),
		slog.Int64("header_bytes", result.HeaderLength),
		slog.Duration("duration", stats.Duration))
	return result, nil
}

func load(ctx context.Context, path string, o *options) (*domain.ParseResult, bool, error) {
	if o.err != nil {
		return nil, false, o.err
	}
	if path == "" {
		return nil, false, apperrors.NewPreconditionError("no file to parse", apperrors.ErrNoSource)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, apperrors.NewNotFoundError("file "+path, apperrors.ErrSourceNotFound)
		}
		return nil, false, apperrors.NewStorageError("opening "+path, err)
	}
	defer f.Close()

	info, err := readHeader(ctx, newLineReader(f, 0), o)
	if err != nil {
		return nil, false, err
	}

	if _, err := f.Seek(info.Length, io.SeekStart); err != nil {
		return nil, false, apperrors.NewStorageError("seeking past header", err)
	}
	lr := newLineReader(f, info.Length)
	lr.lineNo = info.Lines

	tables, aborted, err := readCurves(ctx, lr, info.Header, o)
	if err != nil {
		return nil, false, err
	}

	if o.timestamps {
		tables, err = ConvertTimestamps(info.Header, tables)
		if err != nil {
			return nil, aborted, err
		}
	}

	return domain.NewParseResult(path, info.Header, info.Length, tables, info.OCVCurve, o.timestamps), aborted, nil
}
