package ternary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCartesian_Apexes(t *testing.T) {
	h := math.Sqrt(3) / 2.0 * 100

	tests := []struct {
		name             string
		clay, sand, silt float64
		wantX, wantY     float64
	}{
		{"clay apex at origin", 100, 0, 0, 0, 0},
		{"sand apex on base", 0, 100, 0, 100, 0},
		{"silt apex at top", 0, 0, 100, 50, h},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ToCartesian(tt.clay, tt.sand, tt.silt, DefaultTotal)
			assert.InDelta(t, tt.wantX, p.X, 1e-9)
			assert.InDelta(t, tt.wantY, p.Y, 1e-9)
		})
	}
}

func TestToCartesian_NormalizesOddSums(t *testing.T) {
	// (20, 20, 20) sums to 60; after rescaling it is the centroid triple.
	got := ToCartesian(20, 20, 20, DefaultTotal)
	want := ToCartesian(100.0/3, 100.0/3, 100.0/3, DefaultTotal)
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestToCartesian_ZeroSum(t *testing.T) {
	p := ToCartesian(0, 0, 0, DefaultTotal)
	assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
	assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
}

func TestToCartesian_NegativeComponent(t *testing.T) {
	// Invalid sample, but the transform must stay finite.
	p := ToCartesian(-5, 50, 55, DefaultTotal)
	assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
	assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
}

func TestNormalize_SumsToTotal(t *testing.T) {
	tests := []struct {
		name             string
		clay, sand, silt float64
	}{
		{"already normalized", 30, 40, 30},
		{"undershoot", 10, 20, 30},
		{"overshoot", 80, 90, 40},
		{"tiny values", 0.001, 0.002, 0.003},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, si := Normalize(tt.clay, tt.sand, tt.silt, DefaultTotal)
			assert.InDelta(t, DefaultTotal, c+s+si, 1e-9)
		})
	}
}

func TestNormalize_ZeroSumUnchanged(t *testing.T) {
	c, s, si := Normalize(0, 0, 0, DefaultTotal)
	assert.Zero(t, c)
	assert.Zero(t, s)
	assert.Zero(t, si)
}

func TestToCartesianBatch(t *testing.T) {
	clay := []float64{100, 0, 0}
	sand := []float64{0, 100, 0}
	silt := []float64{0, 0, 100}

	pts, err := ToCartesianBatch(clay, sand, silt, DefaultTotal)
	require.NoError(t, err)
	require.Len(t, pts, 3)

	for i := range clay {
		want := ToCartesian(clay[i], sand[i], silt[i], DefaultTotal)
		assert.Equal(t, want, pts[i])
	}
}

func TestToCartesianBatch_Empty(t *testing.T) {
	pts, err := ToCartesianBatch(nil, nil, nil, DefaultTotal)
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestToCartesianBatch_LengthMismatch(t *testing.T) {
	_, err := ToCartesianBatch([]float64{1, 2}, []float64{1}, []float64{1, 2}, DefaultTotal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}
