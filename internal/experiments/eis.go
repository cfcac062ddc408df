package experiments

import (
	"context"

	"gamrycli/internal/dataprocessing"
	"gamrycli/pkg/contracts/domain"
)

var eisColumns = []string{"Freq", "Zreal", "Zimag", "Zmod", "Zphz"}

// Impedance is a potentiostatic EIS experiment (EISPOT).
type Impedance struct {
	*domain.ParseResult
}

// LoadImpedance loads a file tagged EISPOT.
func LoadImpedance(ctx context.Context, path string, opts ...dataprocessing.Option) (*Impedance, error) {
	result, err := loadTagged(ctx, path, domain.TagImpedance, opts)
	if err != nil {
		return nil, err
	}
	return &Impedance{ParseResult: result}, nil
}

func (e *Impedance) Result() *domain.ParseResult { return e.ParseResult }
func (e *Impedance) Kind() string                 { return "impedance" }

// Curve returns Freq, Zreal, Zimag, Zmod and Zphz of curve i.
func (e *Impedance) Curve(i int) (*domain.Table, error) {
	return project(e.ParseResult, i, eisColumns...)
}

// Spectrum returns the frequencies of curve i and the matching impedance
// as (Zreal, Zimag) pairs, the layout equivalent-circuit fitters take.
func (e *Impedance) Spectrum(i int) (freqs []float64, z [][2]float64, err error) {
	t, err := e.Curve(i)
	if err != nil {
		return nil, nil, err
	}
	freq, _ := t.Column("Freq")
	re, _ := t.Column("Zreal")
	im, _ := t.Column("Zimag")

	freqs = make([]float64, t.Len())
	z = make([][2]float64, t.Len())
	for r := 0; r < t.Len(); r++ {
		freqs[r] = freq.Float(r)
		z[r] = [2]float64{re.Float(r), im.Float(r)}
	}
	return freqs, z, nil
}

func (e *Impedance) Summary() Summary {
	return summarize(e.Kind(), e.ParseResult, eisColumns,
		numberProperty(e.Header, "freq_init", "FREQINIT"),
		numberProperty(e.Header, "freq_final", "FREQFINAL"),
	)
}
