package experiments

import (
	"context"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var ocpColumns = []string{"T", "Vf"}

// OpenCircuitPotential is a CORPOT experiment. Its single curve is the
// open circuit voltage curve of the file.
type OpenCircuitPotential struct {
	*domain.ParseResult
}

// LoadOpenCircuitPotential loads a file tagged CORPOT. Timestamps are
// converted unless opts turn them off with WithTimestamps(false).
func LoadOpenCircuitPotential(ctx context.Context, path string, opts ...dataprocessing.Option) (*OpenCircuitPotential, error) {
	opts = append([]dataprocessing.Option{dataprocessing.WithTimestamps(true)}, opts...)
	result, err := loadTagged(ctx, path, domain.TagOpenCircuit, opts)
	if err != nil {
		return nil, err
	}
	return newOpenCircuitPotential(result), nil
}

func newOpenCircuitPotential(result *domain.ParseResult) *OpenCircuitPotential {
	if first, err := result.Curve(0); err == nil {
		result = result.WithOCVCurve(first)
	}
	return &OpenCircuitPotential{ParseResult: result}
}

func (o *OpenCircuitPotential) Result() *domain.ParseResult { return o.ParseResult }
func (o *OpenCircuitPotential) Kind() string                 { return "open-circuit-potential" }

// Curve returns T and Vf of curve i.
func (o *OpenCircuitPotential) Curve(i int) (*domain.Table, error) {
	return project(o.ParseResult, i, ocpColumns...)
}

func (o *OpenCircuitPotential) Summary() Summary {
	return summarize(o.Kind(), o.ParseResult, ocpColumns,
		numberProperty(o.Header, "ocv", "EOC"),
		numberProperty(o.Header, "total_time", "TLIMIT"),
	)
}
