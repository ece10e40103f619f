package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int{1, 2, 5, 7}, Values: []float64{4, 5, 6, 7}}

	assert.InDelta(t, 2*5+3*6, a.Dot(b), 1e-12)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.Zero(t, a.Dot(SparseVector{}))
}

func TestSparseVector_Normalize(t *testing.T) {
	v := SparseVector{Indices: []int{1, 3}, Values: []float64{3, 4}}
	n := v.Normalize()

	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
	assert.Equal(t, []float64{0.6, 0.8}, n.Values)
	assert.Equal(t, []float64{3, 4}, v.Values, "input vector must not change")

	zero := SparseVector{}
	assert.True(t, zero.Normalize().IsZero())
}

func TestCosine(t *testing.T) {
	a := SparseVector{Indices: []int{0, 1}, Values: []float64{1, 2}}
	scaled := SparseVector{Indices: []int{0, 1}, Values: []float64{2, 4}}
	disjoint := SparseVector{Indices: []int{2}, Values: []float64{1}}

	assert.InDelta(t, 1.0, Cosine(a, scaled), 1e-12)
	assert.Zero(t, Cosine(a, disjoint))
	assert.Zero(t, Cosine(a, SparseVector{}))
	assert.LessOrEqual(t, Cosine(a, a), 1.0)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 1.0, clamp01(1.0000000000000002))
	assert.Equal(t, 0.0, clamp01(-1e-17))
	assert.Equal(t, 0.0, clamp01(math.NaN()))
	assert.Equal(t, 0.5, clamp01(0.5))
}
