package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(
		Column{Name: "Pt", Kind: KindInteger, Integers: []int64{0, 1, 2}},
		[]Column{
			{Name: "T", Unit: "s", Kind: KindNumber, Numbers: []float64{0, 1, 2}},
			{Name: "Vf", Unit: "V vs. Ref.", Kind: KindNumber, Numbers: []float64{0.1, -0.2, math.NaN()}},
			{Name: "Im", Unit: "A", Kind: KindNumber, Numbers: []float64{1e-6, 2e-6, 3e-6}},
			{Name: "Over", Unit: "bits", Kind: KindText, Texts: []string{"...........", "...........", "..........."}},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTable_RejectsUnevenColumns(t *testing.T) {
	_, err := NewTable(
		Column{Name: "Pt", Kind: KindInteger, Integers: []int64{0, 1}},
		[]Column{{Name: "Vf", Kind: KindNumber, Numbers: []float64{1}}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Vf")
}

func TestNewTable_RejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable(
		Column{Name: "Pt", Kind: KindInteger, Integers: []int64{0}},
		[]Column{
			{Name: "Vf", Kind: KindNumber, Numbers: []float64{1}},
			{Name: "Vf", Kind: KindNumber, Numbers: []float64{2}},
		},
	)
	require.Error(t, err)
}

func TestTable_Accessors(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "Pt", tbl.Index().Name)
	assert.Equal(t, []string{"T", "Vf", "Im", "Over"}, tbl.ColumnNames())

	unit, ok := tbl.Unit("Vf")
	assert.True(t, ok)
	assert.Equal(t, "V vs. Ref.", unit)

	_, ok = tbl.Column("Zreal")
	assert.False(t, ok)
}

func TestTable_Select(t *testing.T) {
	tbl := sampleTable(t)

	proj, err := tbl.Select("Im", "Vf")
	require.NoError(t, err)
	assert.Equal(t, []string{"Im", "Vf"}, proj.ColumnNames())
	assert.Equal(t, tbl.Len(), proj.Len())
	assert.Equal(t, "Pt", proj.Index().Name)

	_, err = tbl.Select("Vf", "Zmod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Zmod")
}

func TestTable_WithColumn(t *testing.T) {
	tbl := sampleTable(t)
	start := time.Date(2019, 3, 10, 12, 0, 0, 0, time.UTC)
	times := Column{Name: "T", Unit: "s", Kind: KindTime, Times: []time.Time{start, start.Add(time.Second), start.Add(2 * time.Second)}}

	replaced, err := tbl.WithColumn(times)
	require.NoError(t, err)

	c, _ := replaced.Column("T")
	assert.Equal(t, KindTime, c.Kind)
	original, _ := tbl.Column("T")
	assert.Equal(t, KindNumber, original.Kind)

	_, err = tbl.WithColumn(Column{Name: "nope"})
	require.Error(t, err)
}

func TestTable_Matrix(t *testing.T) {
	tbl := sampleTable(t)

	m, names := tbl.Matrix()
	require.NotNil(t, m)
	assert.Equal(t, []string{"T", "Vf", "Im"}, names)

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, -0.2, m.At(1, 1))
	assert.True(t, math.IsNaN(m.At(2, 1)))
}

func TestTable_Range(t *testing.T) {
	tbl := sampleTable(t)

	lo, hi, err := tbl.Range("Vf")
	require.NoError(t, err)
	assert.Equal(t, -0.2, lo)
	assert.Equal(t, 0.1, hi)

	_, _, err = tbl.Range("Over")
	assert.Error(t, err)

	_, _, err = tbl.Range("missing")
	assert.Error(t, err)
}

func TestColumn_Cell(t *testing.T) {
	ts := time.Date(2020, 2, 10, 17, 18, 5, 8_330_000, time.UTC)
	tests := []struct {
		name string
		col  Column
		want string
	}{
		{"number", Column{Kind: KindNumber, Numbers: []float64{0.0205436}}, "0.0205436"},
		{"integer", Column{Kind: KindInteger, Integers: []int64{7}}, "7"},
		{"text", Column{Kind: KindText, Texts: []string{"..a"}}, "..a"},
		{"time", Column{Kind: KindTime, Times: []time.Time{ts}}, "2020-02-10T17:18:05.00833Z"},
		{"missing time", Column{Kind: KindTime, Times: []time.Time{{}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.Cell(0))
		})
	}
}
