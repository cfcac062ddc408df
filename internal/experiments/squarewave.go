package experiments

import (
	"context"
	"fmt"
	"strconv"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var squareWaveColumns = []string{"T", "Vfwd", "Vrev", "Vstep", "Ifwd", "Irev", "Idif"}

// SquareWave is a square wave voltammetry experiment (SQUARE_WAVE).
type SquareWave struct {
	*domain.ParseResult
}

// LoadSquareWave loads a file tagged SQUARE_WAVE.
func LoadSquareWave(ctx context.Context, path string, opts ...dataprocessing.Option) (*SquareWave, error) {
	result, err := loadTagged(ctx, path, domain.TagSquareWave, opts)
	if err != nil {
		return nil, err
	}
	return &SquareWave{ParseResult: result}, nil
}

func (s *SquareWave) Result() *domain.ParseResult { return s.ParseResult }
func (s *SquareWave) Kind() string                 { return "square-wave" }

// Curve returns the forward, reverse and differential columns of curve i.
func (s *SquareWave) Curve(i int) (*domain.Table, error) {
	return project(s.ParseResult, i, squareWaveColumns...)
}

// StepSize returns the step size, in mV.
func (s *SquareWave) StepSize() (float64, bool) { return s.Header.Number("STEPSIZE") }

// PulseSize returns the pulse amplitude, in mV.
func (s *SquareWave) PulseSize() (float64, bool) { return s.Header.Number("PULSESIZE") }

// PulseWidth returns the pulse on time, in s.
func (s *SquareWave) PulseWidth() (float64, bool) { return s.Header.Number("PULSEON") }

// Frequency returns the step frequency, in Hz.
func (s *SquareWave) Frequency() (float64, bool) { return s.Header.Number("FREQUENCY") }

// VRange returns the sweep limits VINIT and VFINAL, in V. Missing limits are 0.
func (s *SquareWave) VRange() (vinit, vfinal float64) {
	vinit, _ = s.Header.Number("VINIT")
	vfinal, _ = s.Header.Number("VFINAL")
	return vinit, vfinal
}

// Cycles returns the number of cycles, 0 when not recorded.
func (s *SquareWave) Cycles() int64 {
	if n, ok := s.Header.Integer("CYCLES"); ok {
		return n
	}
	if f, ok := s.Header.Number("CYCLES"); ok {
		return int64(f)
	}
	return 0
}

func (s *SquareWave) Summary() Summary {
	vinit, vfinal := s.VRange()
	return summarize(s.Kind(), s.ParseResult, squareWaveColumns,
		numberProperty(s.Header, "step_size", "STEPSIZE"),
		numberProperty(s.Header, "pulse_size", "PULSESIZE"),
		numberProperty(s.Header, "pulse_width", "PULSEON"),
		numberProperty(s.Header, "frequency", "FREQUENCY"),
		Property{Name: "v_range", Value: fmt.Sprintf("[%g, %g] V", vinit, vfinal), Present: true},
		Property{Name: "cycles", Value: strconv.FormatInt(s.Cycles(), 10), Present: true},
	)
}
