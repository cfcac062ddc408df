package testutil

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records and attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("curve parsed", slog.Int("rows", 10))
		logger.Error("load failed", slog.String("source", "x.dta"))

		require.Equal(t, 2, handler.Count())
		r, ok := handler.Find("curve parsed")
		require.True(t, ok)
		assert.Equal(t, int64(10), r.Attrs["rows"])
	})

	t.Run("derived loggers share the buffer", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "parser").Warn("experiment aborted")

		records := handler.RecordsAt(slog.LevelWarn)
		require.Len(t, records, 1)
		assert.Equal(t, "parser", records[0].Attrs["component"])
	})

	t.Run("filters by level and clears", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")

		assert.Len(t, handler.RecordsAt(slog.LevelDebug), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
		AssertNoErrors(t, handler)

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})

	t.Run("concurrent logging", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("batch item", slog.Int("n", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
	})
}

func TestFixturePath(t *testing.T) {
	for _, name := range []string{CVFixture, ChronoAFixture, EISFixture, OCPFixture, SquareWaveFixture, VFP600Fixture} {
		_, err := os.Stat(FixturePath(name))
		assert.NoError(t, err, name)
	}
}

func TestCopyFixtures(t *testing.T) {
	dir := CopyFixtures(t, CVFixture, OCPFixture)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
