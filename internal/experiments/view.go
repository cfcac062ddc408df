// Package experiments layers experiment-specific views over a parsed DTA
// file. A view checks the experiment TAG, projects each curve onto the
// columns that matter for that technique and exposes the header fields that
// describe it. Views embed *domain.ParseResult, so the generic accessors
// (Header, CurveCount, OCV, ...) remain available.
package experiments

import (
	"context"
	"fmt"

	"gamrycli/internal/dataprocessing"
	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"
)

// Property is one header-derived value shown in a summary.
type Property struct {
	Name    string
	Value   string
	Present bool
}

// Summary describes a loaded file for reports.
type Summary struct {
	Kind       string
	Experiment string
	Source     string
	Curves     int
	Columns    []string
	Properties []Property
}

// View is the common surface of every experiment view.
type View interface {
	Result() *domain.ParseResult
	Kind() string
	// Curve returns the projected table at 0-based index i.
	Curve(i int) (*domain.Table, error)
	Summary() Summary
}

// Open loads path and returns the view matching its TAG, or a Generic view
// for experiment types without a dedicated view.
func Open(ctx context.Context, path string, opts ...dataprocessing.Option) (View, error) {
	result, err := dataprocessing.Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	tag, _ := result.ExperimentType()
	switch tag {
	case domain.TagCyclicVoltammetry:
		return &CyclicVoltammetry{ParseResult: result}, nil
	case domain.TagChronoAmperometry:
		return &ChronoAmperometry{ParseResult: result}, nil
	case domain.TagImpedance:
		return &Impedance{ParseResult: result}, nil
	case domain.TagOpenCircuit:
		return newOpenCircuitPotential(result), nil
	case domain.TagSquareWave:
		return &SquareWave{ParseResult: result}, nil
	case domain.TagVFP600:
		return &VFP600{ParseResult: result}, nil
	default:
		return &Generic{ParseResult: result}, nil
	}
}

// loadTagged loads path and rejects files whose TAG is not expected.
func loadTagged(ctx context.Context, path, expected string, opts []dataprocessing.Option) (*domain.ParseResult, error) {
	result, err := dataprocessing.Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	if tag, _ := result.ExperimentType(); tag != expected {
		return nil, apperrors.WrongExperiment(expected, tag)
	}
	return result, nil
}

// project returns curve i restricted to columns, in that order.
func project(r *domain.ParseResult, i int, columns ...string) (*domain.Table, error) {
	t, err := r.Curve(i)
	if err != nil {
		return nil, apperrors.FromDomain(err)
	}
	for _, name := range columns {
		if _, ok := t.Column(name); !ok {
			return nil, apperrors.MissingColumn(name).WithContext("curve", i)
		}
	}
	return t.Select(columns...)
}

func numberProperty(h *domain.Header, name, key string) Property {
	v, ok := h.Number(key)
	if !ok {
		return Property{Name: name}
	}
	return Property{Name: name, Value: fmt.Sprintf("%g", v), Present: true}
}

func summarize(kind string, r *domain.ParseResult, columns []string, props ...Property) Summary {
	tag, _ := r.ExperimentType()
	return Summary{
		Kind:       kind,
		Experiment: tag,
		Source:     r.Source,
		Curves:     r.CurveCount(),
		Columns:    columns,
		Properties: props,
	}
}

// Generic is a DTA file without experiment-specific handling.
type Generic struct {
	*domain.ParseResult
}

// LoadGeneric loads any DTA file without a TAG check.
func LoadGeneric(ctx context.Context, path string, opts ...dataprocessing.Option) (*Generic, error) {
	result, err := dataprocessing.Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return &Generic{ParseResult: result}, nil
}

func (g *Generic) Result() *domain.ParseResult { return g.ParseResult }
func (g *Generic) Kind() string                 { return "generic" }

func (g *Generic) Summary() Summary {
	var columns []string
	if t, err := g.ParseResult.Curve(0); err == nil {
		columns = t.ColumnNames()
	}
	return summarize(g.Kind(), g.ParseResult, columns, numberProperty(g.Header, "ocv", "EOC"))
}
