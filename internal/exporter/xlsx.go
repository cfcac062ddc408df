package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gamrycli/pkg/contracts/domain"
)

const (
	headerSheet = "Header"
	ocvSheet    = "OCV Curve"
)

// XLSXWriter writes a parse result as one workbook: a Header sheet and one
// sheet per curve.
type XLSXWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewXLSXWriter creates a workbook writer rooted at outputDir.
func NewXLSXWriter(outputDir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{outputDir: outputDir, logger: logger}
}

// CurveSheetName is the sheet holding curve n (1-based).
func CurveSheetName(n int) string {
	return fmt.Sprintf("Curve %d", n)
}

// ExportResult writes <base>.xlsx and returns its path.
func (w *XLSXWriter) ExportResult(result *domain.ParseResult) (string, error) {
	path := filepath.Join(w.outputDir, baseName(result.Source)+".xlsx")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the header sheet
	if err := f.SetSheetName(f.GetSheetName(0), headerSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeHeaderSheet(f, result.Header); err != nil {
		return "", err
	}

	for i, n := range result.CurveNumbers() {
		t, err := result.Curve(i)
		if err != nil {
			return "", err
		}
		if err := writeTableSheet(f, CurveSheetName(n), t); err != nil {
			return "", err
		}
	}
	if ocv := result.OCVCurve(); ocv != nil {
		if err := writeTableSheet(f, ocvSheet, ocv); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	w.logger.Info("exported XLSX",
		slog.String("source", result.Source),
		slog.String("path", path),
		slog.Int("sheets", len(f.GetSheetList())))
	return path, nil
}

func writeHeaderSheet(f *excelize.File, h *domain.Header) error {
	if err := f.SetSheetRow(headerSheet, "A1", &[]interface{}{"key", "kind", "value"}); err != nil {
		return fmt.Errorf("failed to write header sheet: %w", err)
	}
	for i, rec := range headerRecords(h) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{rec[0], rec[1], headerCell(h, rec[0], rec[2])}
		if err := f.SetSheetRow(headerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write header row %s: %w", rec[0], err)
		}
	}
	return nil
}

// headerCell keeps numeric header values numeric in the workbook.
func headerCell(h *domain.Header, key, text string) interface{} {
	v, _ := h.Get(key)
	switch x := v.(type) {
	case domain.Number:
		return float64(x)
	case domain.Integer:
		return int64(x)
	case domain.Flag:
		return bool(x)
	default:
		return text
	}
}

func writeTableSheet(f *excelize.File, sheet string, t *domain.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	names, units := tableLayout(t)
	if err := f.SetSheetRow(sheet, "A1", &names); err != nil {
		return fmt.Errorf("failed to write %s names: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A2", &units); err != nil {
		return fmt.Errorf("failed to write %s units: %w", sheet, err)
	}

	all := []domain.Column{t.Index()}
	all = append(all, t.Columns()...)
	for i := 0; i < t.Len(); i++ {
		row := make([]interface{}, len(all))
		for j, c := range all {
			row[j] = cellValue(c, i)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}

// cellValue is the typed value of row i of c. NaN and zero-time cells stay
// empty.
func cellValue(c domain.Column, i int) interface{} {
	switch c.Kind {
	case domain.KindNumber:
		if math.IsNaN(c.Numbers[i]) {
			return nil
		}
		return c.Numbers[i]
	case domain.KindInteger:
		return c.Integers[i]
	case domain.KindTime:
		if c.Times[i].IsZero() {
			return nil
		}
		return c.Times[i]
	default:
		return c.Cell(i)
	}
}
