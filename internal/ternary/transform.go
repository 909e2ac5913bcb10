// Package ternary converts sum-to-total compositional coordinates to 2D
// Cartesian space and provides the polygon geometry used for texture
// classification.
package ternary

import (
	"math"

	"github.com/rotisserie/eris"
)

// DefaultTotal is the conventional component sum for percentage data.
const DefaultTotal = 100.0

// Point is a 2D Cartesian coordinate on the projected triangle.
type Point struct {
	X float64
	Y float64
}

// ToCartesian projects a single (clay, sand, silt) triple onto an equilateral
// triangle of side total. Components are rescaled so they sum to total; a
// zero-sum triple is treated as summing to total already, which maps it to
// the origin rather than dividing by zero.
//
// The axis convention is fixed: clay sits at the origin apex, sand runs along
// the base, silt drives height. Polygon construction and sample projection
// must share this convention for containment tests to mean anything.
func ToCartesian(clay, sand, silt, total float64) Point {
	sum := clay + sand + silt
	if sum == 0 {
		sum = total
	}
	scale := total / sum
	s := sand * scale
	t := silt * scale
	return Point{
		X: s + 0.5*t,
		Y: (math.Sqrt(3) / 2.0) * t,
	}
}

// ToCartesianBatch projects equal-length component slices in one pass.
// Returns an error if the slice lengths disagree.
func ToCartesianBatch(clay, sand, silt []float64, total float64) ([]Point, error) {
	if len(sand) != len(clay) || len(silt) != len(clay) {
		return nil, eris.Errorf("ternary: component length mismatch: clay=%d sand=%d silt=%d",
			len(clay), len(sand), len(silt))
	}
	pts := make([]Point, len(clay))
	for i := range clay {
		pts[i] = ToCartesian(clay[i], sand[i], silt[i], total)
	}
	return pts, nil
}

// Normalize rescales a triple so its components sum to total. Zero-sum input
// is returned unchanged.
func Normalize(clay, sand, silt, total float64) (float64, float64, float64) {
	sum := clay + sand + silt
	if sum == 0 {
		return clay, sand, silt
	}
	scale := total / sum
	return clay * scale, sand * scale, silt * scale
}
