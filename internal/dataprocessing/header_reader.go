package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	apperrors "gamrycli/internal/errors"
	"gamrycli/pkg/contracts/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Header field type tags.
const (
	typeLabel    = "LABEL"
	typePstat    = "PSTAT"
	typeQuant    = "QUANT"
	typePoten    = "POTEN"
	typeIQuant   = "IQUANT"
	typeSelector = "SELECTOR"
	typeToggle   = "TOGGLE"
	typeTwoParam = "TWOPARAM"
)

// Header keys with their own line layout.
const (
	keyTag      = "TAG"
	keyNotes    = "NOTES"
	keyOCVCurve = "OCVCURVE"
)

// HeaderInfo is the output of the header pass.
type HeaderInfo struct {
	Header *domain.Header
	// OCVCurve is the embedded OCVCURVE table, nil when absent.
	OCVCurve *domain.Table
	// Length is the byte offset of the first curve's column-name line, or
	// the stream size when the file has no curves.
	Length int64
	// Lines is the number of lines consumed.
	Lines int
}

// ReadHeader reads the header block of a DTA stream positioned at offset 0.
func ReadHeader(ctx context.Context, r io.Reader, opts ...Option) (*HeaderInfo, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	return readHeader(ctx, newLineReader(r, 0), o)
}

func readHeader(ctx context.Context, lr *lineReader, o *options) (*HeaderInfo, error) {
	_, span := o.tracer.Start(ctx, "dataprocessing.ReadHeader")
	defer span.End()

	info := &HeaderInfo{Header: domain.NewHeader()}
	seen := make(map[string]int, 3)
	for {
		fields, _, ok, err := lr.next()
		if err != nil {
			return nil, apperrors.NewStorageError("reading header", err)
		}
		if !ok {
			break
		}
		if fields == nil {
			continue
		}

		kind, err := o.sentinels.classify(fields, lr.lineNo)
		if err != nil {
			return nil, err
		}
		if kind == lineCurveStart {
			info.Length = lr.offset
			info.Lines = lr.lineNo
			span.SetAttributes(attribute.Int64("gamry.header_bytes", info.Length), attribute.Int("gamry.header_keys", info.Header.Len()))
			return info, nil
		}
		if len(fields) < 2 {
			continue
		}

		if err := checkOnce(seen, fields[0], lr.lineNo); err != nil {
			return nil, err
		}

		switch fields[0] {
		case keyTag:
			info.Header.Set(keyTag, domain.Text(fields[1]))
		case keyNotes:
			notes, err := readNotes(lr, fields)
			if err != nil {
				return nil, err
			}
			info.Header.Set(keyNotes, domain.Text(notes))
		case keyOCVCurve:
			ocv, err := readEmbeddedTable(ctx, lr, fields, o)
			if err != nil {
				return nil, err
			}
			info.OCVCurve = ocv
		default:
			v, known, err := parseTypedField(fields, o.convention, lr.lineNo)
			if err != nil {
				return nil, err
			}
			if !known {
				o.logger.DebugContext(ctx, "skipping header line with unknown type",
					slog.String("key", fields[0]),
					slog.String("type", fields[1]),
					slog.Int("line", lr.lineNo))
				continue
			}
			info.Header.Set(fields[0], v)
		}
	}

	// No curve start: the whole stream is header.
	info.Length = lr.offset
	info.Lines = lr.lineNo
	span.SetAttributes(attribute.Int64("gamry.header_bytes", info.Length), attribute.Int("gamry.header_keys", info.Header.Len()))
	return info, nil
}

// checkOnce rejects a second TAG, NOTES or OCVCURVE line.
func checkOnce(seen map[string]int, key string, lineNo int) error {
	switch key {
	case keyTag, keyNotes, keyOCVCurve:
	default:
		return nil
	}
	if first, dup := seen[key]; dup {
		return apperrors.MalformedLine(lineNo, fmt.Sprintf("duplicate %s, first seen on line %d", key, first))
	}
	seen[key] = lineNo
	return nil
}

// parseTypedField decodes a KEY\tTYPE\tVALUE... line. known is false for
// type tags this reader does not understand.
func parseTypedField(fields []string, conv DecimalConvention, lineNo int) (domain.Value, bool, error) {
	key, typ := fields[0], fields[1]
	value := func() (string, error) {
		if len(fields) < 3 {
			return "", apperrors.MalformedLine(lineNo, fmt.Sprintf("%s %s has no value", key, typ))
		}
		return fields[2], nil
	}

	switch typ {
	case typeLabel, typePstat:
		if len(fields) < 3 {
			return domain.Text(""), true, nil
		}
		return domain.Text(fields[2]), true, nil

	case typeQuant, typePoten:
		raw, err := value()
		if err != nil {
			return nil, true, err
		}
		f, err := conv.Atof(raw)
		if err != nil {
			return nil, true, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s: %q is not a number", key, raw))
		}
		return domain.Number(f), true, nil

	case typeIQuant, typeSelector:
		raw, err := value()
		if err != nil {
			return nil, true, err
		}
		i, err := parseInteger(raw, conv)
		if err != nil {
			return nil, true, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s: %q is not an integer", key, raw))
		}
		return domain.Integer(i), true, nil

	case typeToggle:
		raw, err := value()
		if err != nil {
			return nil, true, err
		}
		return domain.Flag(raw == "T"), true, nil

	case typeTwoParam:
		if len(fields) < 5 {
			return nil, true, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s TWOPARAM needs 3 values, got %d", key, len(fields)-2))
		}
		start, err := conv.Atof(fields[3])
		if err != nil {
			return nil, true, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s: start %q is not a number", key, fields[3]))
		}
		finish, err := conv.Atof(fields[4])
		if err != nil {
			return nil, true, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s: finish %q is not a number", key, fields[4]))
		}
		return domain.Range{Enabled: fields[2] == "T", Start: start, Finish: finish}, true, nil
	}
	return nil, false, nil
}

// parseInteger accepts plain integers and integral values in the file's
// number convention ("251", "2,51E+002").
func parseInteger(raw string, conv DecimalConvention) (int64, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, nil
	}
	f, err := conv.Atof(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q is not integral", raw)
	}
	return int64(f), nil
}

func countField(fields []string, lineNo int) (int, error) {
	if len(fields) < 3 {
		return 0, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s has no line count", fields[0]))
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < 0 {
		return 0, apperrors.MalformedLine(lineNo, fmt.Sprintf("%s line count %q", fields[0], fields[2]))
	}
	return n, nil
}

// readNotes consumes the n free-text lines announced by a NOTES line.
func readNotes(lr *lineReader, fields []string) (string, error) {
	n, err := countField(fields, lr.lineNo)
	if err != nil {
		return "", err
	}
	notes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		_, raw, ok, err := lr.next()
		if err != nil {
			return "", apperrors.NewStorageError("reading notes", err)
		}
		if !ok {
			return "", apperrors.MalformedLine(lr.lineNo, fmt.Sprintf("NOTES announced %d lines, file ended after %d", n, i))
		}
		notes = append(notes, raw)
	}
	return strings.Join(notes, "\n"), nil
}

// readEmbeddedTable consumes an OCVCURVE block: a column-name line, a units
// line that is discarded, then n data rows.
func readEmbeddedTable(ctx context.Context, lr *lineReader, fields []string, o *options) (*domain.Table, error) {
	n, err := countField(fields, lr.lineNo)
	if err != nil {
		return nil, err
	}
	names, _, ok, err := lr.next()
	if err != nil {
		return nil, apperrors.NewStorageError("reading OCVCURVE", err)
	}
	if !ok || names == nil {
		return nil, apperrors.MalformedLine(lr.lineNo, "OCVCURVE has no column names")
	}
	if _, _, _, err := lr.next(); err != nil {
		return nil, apperrors.NewStorageError("reading OCVCURVE", err)
	}
	rows := make([]dataRow, 0, n)
	for i := 0; i < n; i++ {
		row, _, ok, err := lr.next()
		if err != nil {
			return nil, apperrors.NewStorageError("reading OCVCURVE", err)
		}
		if !ok {
			return nil, apperrors.MalformedLine(lr.lineNo, fmt.Sprintf("OCVCURVE announced %d rows, file ended after %d", n, i))
		}
		if row == nil {
			continue
		}
		rows = append(rows, dataRow{fields: row, line: lr.lineNo})
	}
	return buildTable(ctx, names, nil, rows, o)
}
