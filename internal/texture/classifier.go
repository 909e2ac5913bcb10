package texture

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/soiltex/internal/ternary"
)

// Unknown is the sentinel label for samples inside no class polygon. Gaps
// between polygons and slightly out-of-range samples are expected inputs,
// not errors.
const Unknown = "Unknown"

// Classifier binds one System to its projected Cartesian class rings and the
// fixed class order used as the tie-break rule: a point inside several
// polygons gets the earliest-ordered class. Classifiers are immutable after
// construction and safe for concurrent use over disjoint batches.
type Classifier struct {
	system *System
	order  []string
	rings  map[string]*ternary.Ring
	total  float64
}

// FromSystem builds a Classifier, projecting and closing every class polygon
// once. A system that fails validation is rejected here rather than allowed
// to classify silently wrong.
func FromSystem(sys *System) (*Classifier, error) {
	if err := sys.Validate(); err != nil {
		return nil, eris.Wrap(err, "texture: build classifier")
	}

	rings := make(map[string]*ternary.Ring, len(sys.Classes))
	order := make([]string, 0, len(sys.Classes))
	for _, class := range sys.Classes {
		pts := make([]ternary.Point, len(class.Vertices))
		for i, v := range class.Vertices {
			pts[i] = ternary.ToCartesian(v.Clay, v.Sand, v.Silt, ternary.DefaultTotal)
		}
		ring, err := ternary.NewRing(pts)
		if err != nil {
			return nil, eris.Wrapf(err, "texture: system %q class %q", sys.Name, class.Name)
		}
		rings[class.Name] = ring
		order = append(order, class.Name)
	}

	return &Classifier{
		system: sys,
		order:  order,
		rings:  rings,
		total:  ternary.DefaultTotal,
	}, nil
}

// System returns the system this classifier was built from.
func (c *Classifier) System() *System { return c.system }

// ClassOrder returns the class test order, which is also the tie-break order.
func (c *Classifier) ClassOrder() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Ring returns the projected closed ring for a class, or nil if the class
// does not exist.
func (c *Classifier) Ring(class string) *ternary.Ring {
	return c.rings[class]
}

// Geometry returns the class ring as a go-geom polygon, for GeoJSON export
// and other geometry consumers. Returns nil for unknown classes.
func (c *Classifier) Geometry(class string) *geom.Polygon {
	ring, ok := c.rings[class]
	if !ok {
		return nil
	}
	return geom.NewPolygonFlat(geom.XY, ring.FlatCoords(), []int{len(ring.FlatCoords())})
}

// Classify labels a batch of samples. All slices must have equal length; the
// result has one label per sample, Unknown where no polygon contains the
// point. Points are projected once up front, then each class in order claims
// the still-unlabeled points it contains, so overlapping polygons resolve to
// the earliest-ordered class.
func (c *Classifier) Classify(clay, sand, silt []float64) ([]string, error) {
	pts, err := ternary.ToCartesianBatch(clay, sand, silt, c.total)
	if err != nil {
		return nil, eris.Wrap(err, "texture: classify batch")
	}

	labels := make([]string, len(pts))
	for i := range labels {
		labels[i] = Unknown
	}

	for _, class := range c.order {
		ring := c.rings[class]
		for i, p := range pts {
			if labels[i] != Unknown {
				continue
			}
			if ring.Contains(p) {
				labels[i] = class
			}
		}
	}
	return labels, nil
}

// ClassifyPoint labels a single sample.
func (c *Classifier) ClassifyPoint(clay, sand, silt float64) string {
	p := ternary.ToCartesian(clay, sand, silt, c.total)
	for _, class := range c.order {
		if c.rings[class].Contains(p) {
			return class
		}
	}
	return Unknown
}
