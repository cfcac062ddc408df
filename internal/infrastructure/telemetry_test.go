package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"gamrycli/internal/config"
	"gamrycli/internal/dataprocessing"
)

func TestInitializeTracing_None(t *testing.T) {
	p, err := InitializeTracing(config.TelemetryConfig{Tracing: config.TracingNone}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p.TracerProvider)
	assert.NotNil(t, p.Tracer)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitializeTracing_Unsupported(t *testing.T) {
	_, err := InitializeTracing(config.TelemetryConfig{Tracing: "jaeger"}, nil, nil)
	assert.Error(t, err)
}

func TestInitializeTracing_Stdout(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	var buf bytes.Buffer
	p, err := InitializeTracing(config.TelemetryConfig{Tracing: config.TracingStdout}, &buf, nil)
	require.NoError(t, err)
	require.NotNil(t, p.TracerProvider)

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-operation")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	span.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(shutdownCtx))

	assert.Contains(t, buf.String(), "test-operation")
	assert.Contains(t, buf.String(), config.AppName)
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestLoadMetrics_ObserveLoad(t *testing.T) {
	m := NewLoadMetrics()

	m.ObserveLoad(dataprocessing.LoadStats{Experiment: "CV", Curves: 5, Rows: 30, Duration: 2 * time.Millisecond})
	m.ObserveLoad(dataprocessing.LoadStats{Experiment: "EISPOT", Curves: 1, Rows: 5, Aborted: true})
	m.ObserveLoad(dataprocessing.LoadStats{Err: errors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues("CV", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues("EISPOT", StatusAborted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues("unknown", StatusError)))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.curvesParsed))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.rowsParsed))
	assert.Equal(t, 1, testutil.CollectAndCount(m.loadDuration))
}

func TestLoadMetrics_WriteTextfile(t *testing.T) {
	m := NewLoadMetrics()
	m.ObserveLoad(dataprocessing.LoadStats{Experiment: "CV", Curves: 5, Rows: 30})

	path := filepath.Join(t.TempDir(), "gamry.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Contains(text, `gamry_files_loaded_total{experiment="CV",status="ok"} 1`))
	assert.Contains(t, text, "gamry_curves_parsed_total 5")
	assert.Contains(t, text, "gamry_load_duration_seconds_count 1")
}

func TestLoadMetrics_WriteTextfileBadDir(t *testing.T) {
	m := NewLoadMetrics()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "gamry.prom"))
	assert.Error(t, err)
}
