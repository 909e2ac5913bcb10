package ternary

import (
	"math"

	"github.com/rotisserie/eris"
)

// closeTol is the absolute tolerance used when deciding whether a ring's
// first and last vertices already coincide.
const closeTol = 1e-9

// Ring is a closed simple polygon in Cartesian space. The vertex slice
// always ends with a repeat of the first vertex. Rings are immutable after
// construction and safe for concurrent containment tests.
type Ring struct {
	pts                    []Point
	minX, minY, maxX, maxY float64
}

// NewRing builds a closed Ring from projected vertices, appending the first
// vertex at the end unless the ring already closes within tolerance.
// Fewer than 3 distinct vertices or a non-finite coordinate is an error.
func NewRing(pts []Point) (*Ring, error) {
	if len(pts) < 3 {
		return nil, eris.Errorf("ternary: ring needs at least 3 vertices, got %d", len(pts))
	}
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return nil, eris.New("ternary: ring vertex is not finite")
		}
	}

	closed := make([]Point, len(pts), len(pts)+1)
	copy(closed, pts)
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-last.X) > closeTol || math.Abs(first.Y-last.Y) > closeTol {
		closed = append(closed, first)
	}

	r := &Ring{
		pts:  closed,
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, p := range closed {
		r.minX = math.Min(r.minX, p.X)
		r.minY = math.Min(r.minY, p.Y)
		r.maxX = math.Max(r.maxX, p.X)
		r.maxY = math.Max(r.maxY, p.Y)
	}
	return r, nil
}

// Points returns the closed vertex sequence. Callers must not modify it.
func (r *Ring) Points() []Point { return r.pts }

// FlatCoords returns the closed ring as [x0 y0 x1 y1 ...], the layout
// go-geom and GeoJSON encoders consume.
func (r *Ring) FlatCoords() []float64 {
	flat := make([]float64, 0, 2*len(r.pts))
	for _, p := range r.pts {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}

// Contains reports whether p lies inside the ring. Points on an edge or
// vertex count as inside; classification over adjacent texture classes
// depends on boundary points landing somewhere, so the test is inclusive.
func (r *Ring) Contains(p Point) bool {
	if p.X < r.minX-closeTol || p.X > r.maxX+closeTol ||
		p.Y < r.minY-closeTol || p.Y > r.maxY+closeTol {
		return false
	}
	if r.onBoundary(p) {
		return true
	}

	// Even-odd ray cast against the closed ring.
	inside := false
	for i := 1; i < len(r.pts); i++ {
		a, b := r.pts[i-1], r.pts[i]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			t := (p.Y - a.Y) / (b.Y - a.Y)
			if p.X < a.X+t*(b.X-a.X) {
				inside = !inside
			}
		}
	}
	return inside
}

// onBoundary reports whether p sits on any edge within tolerance.
func (r *Ring) onBoundary(p Point) bool {
	const tol = 1e-9
	for i := 1; i < len(r.pts); i++ {
		a, b := r.pts[i-1], r.pts[i]
		if p.X < math.Min(a.X, b.X)-tol || p.X > math.Max(a.X, b.X)+tol ||
			p.Y < math.Min(a.Y, b.Y)-tol || p.Y > math.Max(a.Y, b.Y)+tol {
			continue
		}
		// Perpendicular distance from p to segment ab.
		dx, dy := b.X-a.X, b.Y-a.Y
		segLen := math.Hypot(dx, dy)
		if segLen == 0 {
			if math.Hypot(p.X-a.X, p.Y-a.Y) <= tol {
				return true
			}
			continue
		}
		cross := dx*(p.Y-a.Y) - dy*(p.X-a.X)
		if math.Abs(cross)/segLen <= tol {
			return true
		}
	}
	return false
}

// Area returns the ring's unsigned area via the shoelace formula.
func (r *Ring) Area() float64 {
	return math.Abs(r.signedArea())
}

func (r *Ring) signedArea() float64 {
	var sum float64
	for i := 1; i < len(r.pts); i++ {
		a, b := r.pts[i-1], r.pts[i]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2.0
}

// Centroid returns the ring's area centroid. A degenerate ring with near-zero
// area falls back to the vertex mean so label placement still lands somewhere
// sensible.
func (r *Ring) Centroid() Point {
	area := r.signedArea()
	if math.Abs(area) < 1e-12 {
		var mx, my float64
		n := len(r.pts) - 1 // skip the closing repeat
		for _, p := range r.pts[:n] {
			mx += p.X
			my += p.Y
		}
		return Point{X: mx / float64(n), Y: my / float64(n)}
	}

	var cx, cy float64
	for i := 1; i < len(r.pts); i++ {
		a, b := r.pts[i-1], r.pts[i]
		cross := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Point{X: cx / (6.0 * area), Y: cy / (6.0 * area)}
}
