package exporter

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gamrycli/internal/shared/testutil"
)

func TestXLSXWriter_ExportResult(t *testing.T) {
	dir := t.TempDir()
	logger, logs := testutil.NewTestLogger(t)
	result := sampleResult(t).WithOCVCurve(timedTable(t))

	path, err := NewXLSXWriter(dir, logger).ExportResult(result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cv_data.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Header", "Curve 1", "Curve 2", "OCV Curve"}, f.GetSheetList())

	header, err := f.GetRows("Header")
	require.NoError(t, err)
	require.Len(t, header, 6)
	assert.Equal(t, []string{"key", "kind", "value"}, header[0])
	assert.Equal(t, []string{"TAG", "text", "CV"}, header[1])
	assert.Equal(t, []string{"SCANRATE", "number", "100"}, header[2])

	rows, err := f.GetRows(CurveSheetName(1))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Pt", "T", "Vf", "Over"}, rows[0])
	assert.Equal(t, []string{"#", "s", "V vs. Ref.", "bits"}, rows[1])
	assert.Equal(t, []string{"0", "0", "0.1", "..........."}, rows[2])

	// NaN cells are left empty
	vf, err := f.GetCellValue(CurveSheetName(1), "C5")
	require.NoError(t, err)
	assert.Empty(t, vf)

	// so are missing timestamps
	ocv, err := f.GetRows("OCV Curve")
	require.NoError(t, err)
	require.Len(t, ocv, 5)
	missing, err := f.GetCellValue("OCV Curve", "B5")
	require.NoError(t, err)
	assert.Empty(t, missing)

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "exported XLSX")
}

func TestXLSXWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := NewXLSXWriter(dir, nil).ExportResult(sampleResult(t))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
