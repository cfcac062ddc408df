package dataprocessing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	apperrors "gamrycli/internal/errors"
)

// curveShape is the first field of any table start line, e.g. CURVE,
// CURVE3, ZCURVE or VFPCURVE. The capture is the instrument-family prefix.
var curveShape = regexp.MustCompile(`^([A-Z]*)CURVE[0-9]*$`)

const abortMarker = "EXPERIMENTABORTED"

// DefaultCurvePrefixes are the instrument-family prefixes written by the
// EXPLAIN framework: plain curves, impedance (Z), the VFP600 and EFM140.
var DefaultCurvePrefixes = []string{"", "Z", "VFP", "EFM"}

// reservedCurveKeys are header keys that look like table starts but are not.
var reservedCurveKeys = map[string]bool{"OCVCURVE": true}

type lineKind int

const (
	lineOther lineKind = iota
	lineCurveStart
	lineAbort
)

// SentinelSet recognizes the lines that begin a curve table.
type SentinelSet struct {
	prefixes map[string]bool
}

// NewSentinelSet returns the default prefixes plus extra.
func NewSentinelSet(extra ...string) SentinelSet {
	s := SentinelSet{prefixes: make(map[string]bool, len(DefaultCurvePrefixes)+len(extra))}
	for _, p := range DefaultCurvePrefixes {
		s.prefixes[p] = true
	}
	s.add(extra...)
	return s
}

// With returns a copy of s that also recognizes extra.
func (s SentinelSet) With(extra ...string) SentinelSet {
	out := SentinelSet{prefixes: make(map[string]bool, len(s.prefixes)+len(extra))}
	for p := range s.prefixes {
		out.prefixes[p] = true
	}
	out.add(extra...)
	return out
}

func (s SentinelSet) add(extra ...string) {
	for _, p := range extra {
		s.prefixes[strings.ToUpper(strings.TrimSpace(p))] = true
	}
}

// Prefixes lists the recognized prefixes in sorted order.
func (s SentinelSet) Prefixes() []string {
	out := make([]string, 0, len(s.prefixes))
	for p := range s.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// classify inspects the first field only. A table-shaped line with an
// unregistered prefix is rejected when it declares a TABLE, so that a new
// instrument family fails loudly instead of being folded into the previous
// table.
func (s SentinelSet) classify(fields []string, lineNo int) (lineKind, error) {
	if len(fields) == 0 {
		return lineOther, nil
	}
	first := fields[0]
	if strings.Contains(first, abortMarker) {
		return lineAbort, nil
	}
	if reservedCurveKeys[first] {
		return lineOther, nil
	}
	m := curveShape.FindStringSubmatch(first)
	if m == nil {
		return lineOther, nil
	}
	if s.prefixes[m[1]] {
		return lineCurveStart, nil
	}
	if len(fields) > 1 && fields[1] == "TABLE" {
		return lineOther, apperrors.NewParsingError(
			fmt.Sprintf("line %d: table %q uses prefix %q (known: %q)", lineNo, first, m[1], s.Prefixes()),
			apperrors.ErrUnknownCurvePrefix,
		).WithContext("line", lineNo).WithContext("prefix", m[1])
	}
	return lineOther, nil
}
