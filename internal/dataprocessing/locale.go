package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DecimalConvention describes how a file writes numbers. Group is the
// thousands separator; zero means the convention has none.
type DecimalConvention struct {
	Decimal rune
	Group   rune
}

var (
	// PointDecimal is the en_US convention.
	PointDecimal = DecimalConvention{Decimal: '.', Group: ','}
	// CommaDecimal is the de_DE convention.
	CommaDecimal = DecimalConvention{Decimal: ',', Group: '.'}
	// PosixDecimal is the C/POSIX locale: point decimal, no grouping.
	PosixDecimal = DecimalConvention{Decimal: '.'}
)

func (c DecimalConvention) String() string {
	if c.Group == 0 {
		return fmt.Sprintf("decimal=%q", c.Decimal)
	}
	return fmt.Sprintf("decimal=%q group=%q", c.Decimal, c.Group)
}

// Atof converts s the way a C program does after delocalizing: grouping
// separators are removed, the decimal separator becomes '.', and the rest is
// parsed as a float. A file written under one convention and read under
// another therefore drifts instead of failing, for example "-5,00000E-004"
// read with PointDecimal yields -50.
func (c DecimalConvention) Atof(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if c.Group != 0 {
		s = strings.ReplaceAll(s, string(c.Group), "")
	}
	if c.Decimal != '.' && c.Decimal != 0 {
		s = strings.ReplaceAll(s, string(c.Decimal), ".")
	}
	return strconv.ParseFloat(s, 64)
}

// ConventionForLocale derives the convention of a POSIX or BCP 47 locale name
// such as "de_DE.utf8", "en-US" or "C". The separators come from the CLDR
// number formatting data in golang.org/x/text.
func ConventionForLocale(name string) (DecimalConvention, error) {
	base := name
	if i := strings.IndexAny(base, ".@"); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "", "C", "POSIX":
		return PosixDecimal, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return DecimalConvention{}, fmt.Errorf("unknown locale %q: %w", name, err)
	}

	sample := message.NewPrinter(tag).Sprintf("%.1f", 1234567.5)
	return conventionFromSample(sample)
}

// conventionFromSample reads the separators out of a formatted 1234567.5.
func conventionFromSample(sample string) (DecimalConvention, error) {
	runes := []rune(sample)
	var seps []rune
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			seps = append(seps, r)
		}
	}
	if len(seps) == 0 {
		return DecimalConvention{}, fmt.Errorf("no decimal separator in %q", sample)
	}

	conv := DecimalConvention{Decimal: seps[len(seps)-1]}
	if len(seps) > 1 {
		conv.Group = seps[0]
	}
	if conv.Group == conv.Decimal {
		return DecimalConvention{}, fmt.Errorf("ambiguous separators in %q", sample)
	}
	return conv, nil
}
