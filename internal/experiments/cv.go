package experiments

import (
	"context"
	"fmt"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var cvColumns = []string{"Vf", "Im"}

// CyclicVoltammetry is a CV experiment: potential and current per cycle,
// one curve per cycle.
type CyclicVoltammetry struct {
	*domain.ParseResult
}

// LoadCyclicVoltammetry loads a file tagged CV.
func LoadCyclicVoltammetry(ctx context.Context, path string, opts ...dataprocessing.Option) (*CyclicVoltammetry, error) {
	result, err := loadTagged(ctx, path, domain.TagCyclicVoltammetry, opts)
	if err != nil {
		return nil, err
	}
	return &CyclicVoltammetry{ParseResult: result}, nil
}

func (c *CyclicVoltammetry) Result() *domain.ParseResult { return c.ParseResult }
func (c *CyclicVoltammetry) Kind() string                 { return "cyclic-voltammetry" }

// Curve returns Vf and Im of cycle i.
func (c *CyclicVoltammetry) Curve(i int) (*domain.Table, error) {
	return project(c.ParseResult, i, cvColumns...)
}

// VRange returns the programmed limits VLIMIT1 and VLIMIT2, in V.
func (c *CyclicVoltammetry) VRange() (limit1, limit2 float64, ok bool) {
	limit1, ok1 := c.Header.Number("VLIMIT1")
	limit2, ok2 := c.Header.Number("VLIMIT2")
	return limit1, limit2, ok1 && ok2
}

// ScanRate returns the programmed scan rate, in mV/s.
func (c *CyclicVoltammetry) ScanRate() (float64, bool) {
	return c.Header.Number("SCANRATE")
}

// AchievedRange returns the lowest and highest Vf reached in cycle i.
func (c *CyclicVoltammetry) AchievedRange(i int) (lo, hi float64, err error) {
	t, err := c.Curve(i)
	if err != nil {
		return 0, 0, err
	}
	return t.Range("Vf")
}

func (c *CyclicVoltammetry) Summary() Summary {
	vr := Property{Name: "v_range"}
	if l1, l2, ok := c.VRange(); ok {
		vr = Property{Name: "v_range", Value: fmt.Sprintf("[%g, %g] V", l1, l2), Present: true}
	}
	return summarize(c.Kind(), c.ParseResult, cvColumns,
		numberProperty(c.Header, "scan_rate", "SCANRATE"),
		vr,
	)
}
