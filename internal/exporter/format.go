package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"gamrycli/pkg/contracts/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// baseName is the source file name without directory and extension.
func baseName(source string) string {
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) {
		return "result"
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// headerRecords flattens a header into key, kind, value rows in file order.
func headerRecords(h *domain.Header) [][]string {
	records := make([][]string, 0, h.Len())
	for _, key := range h.Keys() {
		v, _ := h.Get(key)
		records = append(records, []string{key, domain.KindOf(v), formatValue(v)})
	}
	return records
}

// formatValue renders a header value for a single cell. Ranges keep their
// enabled flag so the cell round-trips to the file's own TWOPARAM notation.
func formatValue(v domain.Value) string {
	if r, ok := v.(domain.Range); ok {
		return fmt.Sprintf("%s %g %g", domain.Flag(r.Enabled), r.Start, r.Finish)
	}
	return v.String()
}

// tableLayout returns the column names and units of t, index first.
func tableLayout(t *domain.Table) (names, units []string) {
	index := t.Index()
	names = append(names, index.Name)
	units = append(units, index.Unit)
	for _, c := range t.Columns() {
		names = append(names, c.Name)
		units = append(units, c.Unit)
	}
	return names, units
}

// tableRow renders row i of t, index first.
func tableRow(t *domain.Table, cols []domain.Column, i int) []string {
	row := make([]string, 0, len(cols)+1)
	row = append(row, t.Index().Cell(i))
	for _, c := range cols {
		row = append(row, c.Cell(i))
	}
	return row
}
