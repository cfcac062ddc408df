package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gamrycli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	outputDir string
	bom       bool
	logger    *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at outputDir. bom prefixes every
// new file with a UTF-8 byte order mark so spreadsheet tools detect UTF-8.
func NewCSVWriter(outputDir string, bom bool, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outputDir: outputDir, bom: bom, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTable writes one curve: a row of column names, a row of units, then
// the data rows. Timestamps are written as RFC 3339 with nanoseconds.
func (w *CSVWriter) WriteTable(filePath string, t *domain.Table) error {
	names, units := tableLayout(t)

	stream, err := w.CreateStreamWriter(filePath, names)
	if err != nil {
		return err
	}
	if err := stream.WriteRecord(units); err != nil {
		stream.Close()
		return fmt.Errorf("failed to write units: %w", err)
	}

	cols := t.Columns()
	for i := 0; i < t.Len(); i++ {
		if err := stream.WriteRecord(tableRow(t, cols, i)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return stream.Close()
}

// ExportResult writes <base>_header.csv, <base>_curve<N>.csv for every curve
// (N is 1-based) and <base>_ocvcurve.csv when the result has an OCV curve.
// It returns the written paths.
func (w *CSVWriter) ExportResult(result *domain.ParseResult) ([]string, error) {
	base := baseName(result.Source)
	var written []string

	headerFile := base + "_header.csv"
	if err := w.WriteCSV(headerFile, WriteOptions{
		Headers:   []string{"key", "kind", "value"},
		Records:   headerRecords(result.Header),
		BOMPrefix: w.bom,
	}); err != nil {
		return written, err
	}
	written = append(written, w.resolvePath(headerFile))

	for i, n := range result.CurveNumbers() {
		t, err := result.Curve(i)
		if err != nil {
			return written, err
		}
		name := fmt.Sprintf("%s_curve%d.csv", base, n)
		if err := w.WriteTable(name, t); err != nil {
			return written, err
		}
		written = append(written, w.resolvePath(name))
	}

	if ocv := result.OCVCurve(); ocv != nil {
		name := base + "_ocvcurve.csv"
		if err := w.WriteTable(name, ocv); err != nil {
			return written, err
		}
		written = append(written, w.resolvePath(name))
	}

	w.logger.Info("exported CSV",
		slog.String("source", result.Source),
		slog.Int("files", len(written)))
	return written, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StreamWriter provides streaming CSV writing for large tables
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if w.bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath places relative paths under the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.outputDir == "" {
		return filePath
	}
	return filepath.Join(w.outputDir, filePath)
}
