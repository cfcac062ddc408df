package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult_CurveIndexRange(t *testing.T) {
	tbl := sampleTable(t)
	h := NewHeader()
	h.Set("TAG", Text(TagCyclicVoltammetry))
	r := NewParseResult("x.dta", h, 120, []*Table{tbl, tbl, tbl}, nil, false)

	for i := 0; i < r.CurveCount(); i++ {
		got, err := r.Curve(i)
		require.NoError(t, err)
		assert.Same(t, tbl, got)
	}
	for _, i := range []int{-1, 3, 100} {
		_, err := r.Curve(i)
		assert.ErrorIs(t, err, ErrCurveOutOfRange)
		var idxErr *CurveIndexError
		require.True(t, errors.As(err, &idxErr))
		assert.Equal(t, CurveIndexError{Index: i, Count: 3}, *idxErr)
	}

	assert.Equal(t, []int{0, 1, 2}, r.CurveIndices())
	assert.Equal(t, []int{1, 2, 3}, r.CurveNumbers())
	assert.True(t, r.Loaded)

	tag, ok := r.ExperimentType()
	assert.True(t, ok)
	assert.Equal(t, "CV", tag)
}

func TestParseResult_OCV(t *testing.T) {
	h := NewHeader()
	r := NewParseResult("x.dta", h, 0, nil, nil, false)

	_, ok := r.OCV()
	assert.False(t, ok)
	assert.Nil(t, r.OCVCurve())

	h.Set("EOC", Number(0.2834373))
	v, ok := r.OCV()
	assert.True(t, ok)
	assert.Equal(t, 0.2834373, v)

	tbl := sampleTable(t)
	withCurve := r.WithOCVCurve(tbl)
	assert.Same(t, tbl, withCurve.OCVCurve())
	assert.Nil(t, r.OCVCurve())
}
