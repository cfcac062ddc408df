package experiments

import (
	"context"
	"strconv"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var vfp600Columns = []string{"T", "Voltage", "Current"}

// VFP600 is a recording from the VFP600 acquisition instrument. Its files
// carry VFPCURVE tables; the TAG is not checked.
type VFP600 struct {
	*domain.ParseResult
}

// LoadVFP600 loads a VFP600 file.
func LoadVFP600(ctx context.Context, path string, opts ...dataprocessing.Option) (*VFP600, error) {
	result, err := dataprocessing.Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return &VFP600{ParseResult: result}, nil
}

func (v *VFP600) Result() *domain.ParseResult { return v.ParseResult }
func (v *VFP600) Kind() string                 { return "vfp600" }

// Curve returns T, Voltage and Current of curve i.
func (v *VFP600) Curve(i int) (*domain.Table, error) {
	return project(v.ParseResult, i, vfp600Columns...)
}

// SampleTime returns the sample period 1/FREQ, in s.
func (v *VFP600) SampleTime() (float64, bool) {
	freq, ok := v.Header.Number("FREQ")
	if !ok || freq == 0 {
		return 0, false
	}
	return 1 / freq, true
}

// SampleCount returns the number of samples in the first curve.
func (v *VFP600) SampleCount() int {
	t, err := v.ParseResult.Curve(0)
	if err != nil {
		return 0
	}
	return t.Len()
}

func (v *VFP600) Summary() Summary {
	st := Property{Name: "sample_time"}
	if s, ok := v.SampleTime(); ok {
		st = Property{Name: "sample_time", Value: strconv.FormatFloat(s, 'g', -1, 64), Present: true}
	}
	return summarize(v.Kind(), v.ParseResult, vfp600Columns,
		st,
		Property{Name: "sample_count", Value: strconv.Itoa(v.SampleCount()), Present: true},
	)
}
