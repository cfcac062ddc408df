package performance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamrycli/internal/dataprocessing"
	"gamrycli/internal/infrastructure"
	"gamrycli/internal/shared/testutil"
)

// Performance test configuration
const (
	LoadsPerWorker = 25
	MaxLatency     = 250 * time.Millisecond
)

var ConcurrencyLevels = []int{1, 4, 16}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type loadResults struct {
	TotalLoads     int64
	SuccessCount   int64
	ErrorCount     int64
	Throughput     float64
	AverageLatency time.Duration
	P95Latency     time.Duration
}

// runLoadTest loads path loadsPerWorker times from each of concurrency
// goroutines and aggregates the latencies.
func runLoadTest(t *testing.T, path string, concurrency, loadsPerWorker int, opts ...dataprocessing.Option) loadResults {
	t.Helper()

	var (
		success, errCount atomic.Int64
		mu                sync.Mutex
		latencies         []time.Duration
		wg                sync.WaitGroup
	)
	ctx := context.Background()
	opts = append([]dataprocessing.Option{dataprocessing.WithLogger(discard)}, opts...)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < loadsPerWorker; i++ {
				began := time.Now()
				_, err := dataprocessing.Load(ctx, path, opts...)
				elapsed := time.Since(began)
				if err != nil {
					errCount.Add(1)
					continue
				}
				success.Add(1)
				mu.Lock()
				latencies = append(latencies, elapsed)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)

	results := loadResults{
		TotalLoads:   int64(concurrency * loadsPerWorker),
		SuccessCount: success.Load(),
		ErrorCount:   errCount.Load(),
		Throughput:   float64(success.Load()) / total.Seconds(),
	}
	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		results.AverageLatency = sum / time.Duration(len(latencies))
		results.P95Latency = latencies[len(latencies)*95/100]
	}
	return results
}

// TestLoadConcurrentFiles runs independent loads of the same file in parallel
func TestLoadConcurrentFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping load test in short mode")
	}

	for _, concurrency := range ConcurrencyLevels {
		t.Run(fmt.Sprintf("concurrency_%d", concurrency), func(t *testing.T) {
			metrics := infrastructure.NewLoadMetrics()
			results := runLoadTest(t, testutil.FixturePath(testutil.CVFixture), concurrency, LoadsPerWorker,
				dataprocessing.WithRecorder(metrics))

			t.Logf("Concurrency %d - Loads: %d, Success: %d, Errors: %d",
				concurrency, results.TotalLoads, results.SuccessCount, results.ErrorCount)
			t.Logf("Throughput: %.2f loads/s, Avg Latency: %v, P95 Latency: %v",
				results.Throughput, results.AverageLatency, results.P95Latency)

			assert.Equal(t, results.TotalLoads, results.SuccessCount)
			assert.Zero(t, results.ErrorCount)
			assert.Less(t, results.AverageLatency, MaxLatency, "Average latency should be acceptable")
			assert.Equal(t, float64(results.TotalLoads), filesLoaded(t, metrics))

			var m runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&m)
			t.Logf("Memory usage - Alloc: %d KB, Sys: %d KB", m.Alloc/1024, m.Sys/1024)
		})
	}
}

// TestLoadResultsAreIndependent checks that parallel loads share no state
func TestLoadResultsAreIndependent(t *testing.T) {
	path := testutil.FixturePath(testutil.EISFixture)
	const n = 8

	var wg sync.WaitGroup
	rows := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := dataprocessing.Load(context.Background(), path, dataprocessing.WithLogger(discard))
			if err != nil {
				errs[i] = err
				return
			}
			curve, err := result.Curve(0)
			if err != nil {
				errs[i] = err
				return
			}
			rows[i] = curve.Len()
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, rows[0], rows[i])
	}
	assert.Positive(t, rows[0])
}

// filesLoaded sums gamry_files_loaded_total over all label sets
func filesLoaded(t *testing.T, m *infrastructure.LoadMetrics) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != "gamry_files_loaded_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

// BenchmarkLoad benchmarks a full load of each experiment type
func BenchmarkLoad(b *testing.B) {
	fixtures := []string{
		testutil.CVFixture,
		testutil.ChronoAFixture,
		testutil.EISFixture,
		testutil.OCPFixture,
		testutil.SquareWaveFixture,
	}
	ctx := context.Background()

	for _, name := range fixtures {
		b.Run(name, func(b *testing.B) {
			path := testutil.FixturePath(name)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := dataprocessing.Load(ctx, path, dataprocessing.WithLogger(discard)); err != nil {
					b.Fatalf("Load failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkLoadParallel benchmarks independent loads from many goroutines
func BenchmarkLoadParallel(b *testing.B) {
	path := testutil.FixturePath(testutil.CVFixture)
	metrics := infrastructure.NewLoadMetrics()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := dataprocessing.Load(ctx, path,
				dataprocessing.WithLogger(discard),
				dataprocessing.WithRecorder(metrics))
			if err != nil {
				b.Fatalf("Load failed: %v", err)
			}
		}
	})
}

// BenchmarkReadHeader benchmarks the header reader alone
func BenchmarkReadHeader(b *testing.B) {
	data, err := os.ReadFile(testutil.FixturePath(testutil.SquareWaveFixture))
	if err != nil {
		b.Fatalf("read fixture: %v", err)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dataprocessing.ReadHeader(ctx, bytes.NewReader(data), dataprocessing.WithLogger(discard)); err != nil {
			b.Fatalf("ReadHeader failed: %v", err)
		}
	}
}
