package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader_SetKeepsFirstInsertionOrder(t *testing.T) {
	h := NewHeader()
	h.Set("TAG", Text("CV"))
	h.Set("SCANRATE", Number(0.1))
	h.Set("CYCLES", Integer(3))
	h.Set("SCANRATE", Number(0.2))

	assert.Equal(t, []string{"TAG", "SCANRATE", "CYCLES"}, h.Keys())
	assert.Equal(t, 3, h.Len())

	v, ok := h.Number("SCANRATE")
	assert.True(t, ok)
	assert.Equal(t, 0.2, v)
}

func TestHeader_TypedAccessors(t *testing.T) {
	h := NewHeader()
	h.Set("TITLE", Text("Cyclic Voltammetry"))
	h.Set("SCANRATE", Number(1.23456))
	h.Set("CYCLES", Integer(251))
	h.Set("IRCOMP", Flag(true))
	h.Set("DELAY", Range{Enabled: true, Start: 300, Finish: 0.5})

	tests := []struct {
		name string
		get  func() (interface{}, bool)
		want interface{}
		ok   bool
	}{
		{"text", func() (interface{}, bool) { return h.Text("TITLE") }, "Cyclic Voltammetry", true},
		{"number", func() (interface{}, bool) { return h.Number("SCANRATE") }, 1.23456, true},
		{"integer", func() (interface{}, bool) { return h.Integer("CYCLES") }, int64(251), true},
		{"integer widened to number", func() (interface{}, bool) { return h.Number("CYCLES") }, float64(251), true},
		{"flag", func() (interface{}, bool) { return h.Flag("IRCOMP") }, true, true},
		{"range", func() (interface{}, bool) { return h.Range("DELAY") }, Range{Enabled: true, Start: 300, Finish: 0.5}, true},
		{"missing key", func() (interface{}, bool) { return h.Number("VLIMIT1") }, float64(0), false},
		{"wrong variant", func() (interface{}, bool) { return h.Integer("SCANRATE") }, int64(0), false},
		{"text is not a number", func() (interface{}, bool) { return h.Number("TITLE") }, float64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.get()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeader_NilSafe(t *testing.T) {
	var h *Header

	assert.False(t, h.Has("TAG"))
	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Keys())
	_, ok := h.Text("TAG")
	assert.False(t, ok)
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		want  string
		kind  string
	}{
		{Text("abc"), "abc", "text"},
		{Number(0.5), "0.5", "number"},
		{Integer(-4), "-4", "integer"},
		{Flag(true), "T", "flag"},
		{Flag(false), "F", "flag"},
		{Range{Enabled: false, Start: 300, Finish: 0.1}, "F 300 0.1", "range"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
			assert.Equal(t, tt.kind, KindOf(tt.value))
		})
	}
}
