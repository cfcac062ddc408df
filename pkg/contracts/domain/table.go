package domain

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ColumnKind identifies which value slice of a Column is populated.
type ColumnKind int

const (
	KindNumber ColumnKind = iota
	KindInteger
	KindText
	KindTime
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("ColumnKind(%d)", int(k))
	}
}

// Column is one named, unit-labelled column of a curve table. Exactly one of
// the value slices is populated, selected by Kind. Treat the slices as
// read-only: they are shared between projections of the same table.
// Missing cells are NaN in Numbers and the zero time.Time in Times.
type Column struct {
	Name     string      `json:"name"`
	Unit     string      `json:"unit"`
	Kind     ColumnKind  `json:"kind"`
	Numbers  []float64   `json:"numbers,omitempty"`
	Integers []int64     `json:"integers,omitempty"`
	Texts    []string    `json:"texts,omitempty"`
	Times    []time.Time `json:"times,omitempty"`
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	switch c.Kind {
	case KindNumber:
		return len(c.Numbers)
	case KindInteger:
		return len(c.Integers)
	case KindText:
		return len(c.Texts)
	case KindTime:
		return len(c.Times)
	default:
		return 0
	}
}

// Float returns row i as a float64. Text and time cells yield NaN.
func (c Column) Float(i int) float64 {
	switch c.Kind {
	case KindNumber:
		return c.Numbers[i]
	case KindInteger:
		return float64(c.Integers[i])
	default:
		return math.NaN()
	}
}

// IsNumeric reports whether the column holds numbers or integers.
func (c Column) IsNumeric() bool {
	return c.Kind == KindNumber || c.Kind == KindInteger
}

// Cell renders row i for text exports.
func (c Column) Cell(i int) string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("%g", c.Numbers[i])
	case KindInteger:
		return fmt.Sprintf("%d", c.Integers[i])
	case KindText:
		return c.Texts[i]
	case KindTime:
		if c.Times[i].IsZero() {
			return ""
		}
		return c.Times[i].Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Table is one curve: an index column (usually Pt) plus ordered data columns.
// Tables are immutable once built.
type Table struct {
	index   Column
	columns []Column
	lookup  map[string]int
}

// NewTable builds a table and checks that every column has the index's row count.
func NewTable(index Column, columns []Column) (*Table, error) {
	rows := index.Len()
	lookup := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, index %q has %d", c.Name, c.Len(), index.Name, rows)
		}
		if _, dup := lookup[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		lookup[c.Name] = i
	}
	return &Table{index: index, columns: columns, lookup: lookup}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.index.Len() }

// Index returns the row-identification column.
func (t *Table) Index() Column { return t.index }

// Columns returns the data columns in file order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the data column names in order, excluding the index.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the data column called name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.lookup[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Unit returns the declared unit of column name.
func (t *Table) Unit(name string) (string, bool) {
	c, ok := t.Column(name)
	return c.Unit, ok
}

// Select projects the table onto names, in the given order. The index is kept.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %q not found (have %v)", name, t.ColumnNames())
		}
		cols = append(cols, c)
	}
	return NewTable(t.index, cols)
}

// WithColumn returns a copy of t where the column named c.Name is replaced by c.
func (t *Table) WithColumn(c Column) (*Table, error) {
	i, ok := t.lookup[c.Name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", c.Name)
	}
	cols := t.Columns()
	cols[i] = c
	return NewTable(t.index, cols)
}

// Matrix returns the numeric data columns as a rows x columns dense matrix,
// along with the names of the columns it contains. Text and time columns are skipped.
func (t *Table) Matrix() (*mat.Dense, []string) {
	var names []string
	var numeric []Column
	for _, c := range t.columns {
		if c.IsNumeric() {
			names = append(names, c.Name)
			numeric = append(numeric, c)
		}
	}
	rows := t.Len()
	if rows == 0 || len(numeric) == 0 {
		return nil, names
	}
	m := mat.NewDense(rows, len(numeric), nil)
	for j, c := range numeric {
		for i := 0; i < rows; i++ {
			m.Set(i, j, c.Float(i))
		}
	}
	return m, names
}

// Range returns the minimum and maximum of a numeric column, ignoring NaN cells.
func (t *Table) Range(name string) (min, max float64, err error) {
	c, ok := t.Column(name)
	if !ok {
		return 0, 0, fmt.Errorf("column %q not found", name)
	}
	if !c.IsNumeric() {
		return 0, 0, fmt.Errorf("column %q is %s, not numeric", name, c.Kind)
	}
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v := c.Float(i); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0, fmt.Errorf("column %q has no numeric values", name)
	}
	return floats.Min(vals), floats.Max(vals), nil
}
