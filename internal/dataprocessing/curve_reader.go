package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"

	"go.opentelemetry.io/otel/attribute"
)

// dataRow is one tab-split data line and its 1-based line number.
type dataRow struct {
	fields []string
	line   int
}

// ReadCurves reads every curve table from a stream positioned at the header
// boundary (HeaderInfo.Length). header must come from the same file: its TAG
// selects the required-unit checks.
func ReadCurves(ctx context.Context, r io.Reader, header *domain.Header, opts ...Option) ([]*domain.Table, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	tables, _, err := readCurves(ctx, newLineReader(r, 0), header, o)
	return tables, err
}

// readCurves returns the tables and whether the experiment was aborted.
func readCurves(ctx context.Context, lr *lineReader, header *domain.Header, o *options) ([]*domain.Table, bool, error) {
	ctx, span := o.tracer.Start(ctx, "dataprocessing.ReadCurves")
	defer span.End()

	tag, ok := header.Text(keyTag)
	if header.Len() == 0 || !ok {
		return nil, false, apperrors.NewPreconditionError("curves requested before the header was read", apperrors.ErrHeaderNotRead)
	}

	registry := NewUnitRegistry(tag)
	var tables []*domain.Table
	aborted := false

	for !aborted {
		names, _, ok, err := lr.next()
		if err != nil {
			return nil, false, apperrors.NewStorageError("reading curve columns", err)
		}
		if !ok || names == nil {
			break
		}
		namesLine := lr.lineNo

		units, _, _, err := lr.next()
		if err != nil {
			return nil, false, apperrors.NewStorageError("reading curve units", err)
		}
		if len(units) > 0 {
			units = units[1:]
		}

		var rows []dataRow
		ended := false
		for {
			fields, _, ok, err := lr.next()
			if err != nil {
				return nil, false, apperrors.NewStorageError("reading curve data", err)
			}
			if !ok {
				ended = true
				break
			}
			if fields == nil {
				continue
			}
			kind, err := o.sentinels.classify(fields, lr.lineNo)
			if err != nil {
				return nil, false, err
			}
			if kind == lineCurveStart {
				break
			}
			if kind == lineAbort {
				aborted = true
				break
			}
			rows = append(rows, dataRow{fields: fields, line: lr.lineNo})
		}

		if len(rows) == 0 {
			break
		}
		table, err := buildTable(ctx, names, units, rows, o)
		if err != nil {
			return nil, false, err
		}
		if err := registry.Check(table); err != nil {
			return nil, false, err
		}
		tables = append(tables, table)

		o.logger.DebugContext(ctx, "curve parsed",
			slog.Int("curve", len(tables)),
			slog.Int("rows", table.Len()),
			slog.Int("line", namesLine))

		if ended {
			break
		}
	}

	if aborted {
		o.logger.WarnContext(ctx, "experiment aborted, last curve is truncated",
			slog.Int("curve", len(tables)),
			slog.Int("line", lr.lineNo))
	}
	span.SetAttributes(attribute.Int("gamry.curve_count", len(tables)), attribute.Bool("gamry.aborted", aborted))
	return tables, aborted, nil
}

// buildTable turns tab-split rows into a typed table. The first column is
// the index; units align with the remaining columns.
func buildTable(ctx context.Context, names []string, units []string, rows []dataRow, o *options) (*domain.Table, error) {
	width := len(names)
	cells := make([][]string, width)
	for c := range cells {
		cells[c] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row.fields) > width {
			return nil, apperrors.MalformedLine(row.line, fmt.Sprintf("%d fields, table has %d columns", len(row.fields), width))
		}
		for c, v := range row.fields {
			cells[c][r] = v
		}
	}

	index, err := coerceIndex(names[0], cells[0], rows)
	if err != nil {
		return nil, err
	}

	columns := make([]domain.Column, 0, width-1)
	for c := 1; c < width; c++ {
		unit := ""
		if c-1 < len(units) {
			unit = units[c-1]
		}
		col := coerceColumn(names[c], cells[c], o.convention)
		col.Unit = unit
		if col.Kind == domain.KindText && names[c] != domain.ColumnOverload {
			o.logger.WarnContext(ctx, "column is not numeric, kept as text",
				slog.String("column", names[c]),
				slog.Int("line", rows[0].line))
		}
		columns = append(columns, col)
	}

	table, err := domain.NewTable(index, columns)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("table starting at line %d", rows[0].line), err)
	}
	return table, nil
}

// coerceIndex converts the index column. A Pt index must hold integers.
func coerceIndex(name string, cells []string, rows []dataRow) (domain.Column, error) {
	if name != domain.ColumnPoint {
		return coerceColumn(name, cells, PointDecimal), nil
	}
	ints := make([]int64, len(cells))
	for i, v := range cells {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.Column{}, apperrors.MalformedLine(rows[i].line, fmt.Sprintf("point index %q is not an integer", v))
		}
		ints[i] = n
	}
	return domain.Column{Name: name, Kind: domain.KindInteger, Integers: ints}, nil
}

// coerceColumn types one data column. Values that all read as plain
// point-decimal floats are taken as is; otherwise every value is read with
// the file's convention. Over and anything that still fails stays text.
// Empty cells are NaN.
func coerceColumn(name string, cells []string, conv DecimalConvention) domain.Column {
	if name == domain.ColumnOverload {
		return textColumn(name, cells)
	}
	if nums, ok := parseAll(cells, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }); ok {
		return domain.Column{Name: name, Kind: domain.KindNumber, Numbers: nums}
	}
	if nums, ok := parseAll(cells, conv.Atof); ok {
		return domain.Column{Name: name, Kind: domain.KindNumber, Numbers: nums}
	}
	return textColumn(name, cells)
}

func parseAll(cells []string, parse func(string) (float64, error)) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, v := range cells {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		f, err := parse(v)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func textColumn(name string, cells []string) domain.Column {
	texts := make([]string, len(cells))
	copy(texts, cells)
	return domain.Column{Name: name, Kind: domain.KindText, Texts: texts}
}
