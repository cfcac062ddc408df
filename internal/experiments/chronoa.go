package experiments

import (
	"context"
	"strconv"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var chronoColumns = []string{"T", "Vf", "Im"}

// ChronoAmperometry is a CHRONOA experiment. Files usually hold one curve.
type ChronoAmperometry struct {
	*domain.ParseResult
}

// LoadChronoAmperometry loads a file tagged CHRONOA.
func LoadChronoAmperometry(ctx context.Context, path string, opts ...dataprocessing.Option) (*ChronoAmperometry, error) {
	result, err := loadTagged(ctx, path, domain.TagChronoAmperometry, opts)
	if err != nil {
		return nil, err
	}
	return &ChronoAmperometry{ParseResult: result}, nil
}

func (c *ChronoAmperometry) Result() *domain.ParseResult { return c.ParseResult }
func (c *ChronoAmperometry) Kind() string                 { return "chronoamperometry" }

// Curve returns T, Vf and Im of curve i.
func (c *ChronoAmperometry) Curve(i int) (*domain.Table, error) {
	return project(c.ParseResult, i, chronoColumns...)
}

// SampleTime returns the programmed sample period, in s.
func (c *ChronoAmperometry) SampleTime() (float64, bool) {
	return c.Header.Number("SAMPLETIME")
}

// SampleCount returns the number of samples in the first curve, or 0 when
// the file has no curves.
func (c *ChronoAmperometry) SampleCount() int {
	t, err := c.ParseResult.Curve(0)
	if err != nil {
		return 0
	}
	return t.Len()
}

func (c *ChronoAmperometry) Summary() Summary {
	return summarize(c.Kind(), c.ParseResult, chronoColumns,
		numberProperty(c.Header, "sample_time", "SAMPLETIME"),
		Property{Name: "sample_count", Value: strconv.Itoa(c.SampleCount()), Present: true},
	)
}
