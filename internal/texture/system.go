// Package texture defines soil texture classification systems and the
// polygon classifier that assigns samples to texture classes.
package texture

import (
	"math"

	"github.com/rotisserie/eris"
)

// Vertex is one polygon corner in ternary space. Vertices define class
// boundaries directly; unlike samples they are never normalized, so a triple
// does not have to sum to the ternary total.
type Vertex struct {
	Clay float64
	Sand float64
	Silt float64
}

// ClassPolygon is one named texture class with its ordered boundary vertices.
type ClassPolygon struct {
	Name     string
	Vertices []Vertex
}

// System is a complete named classification standard: an ordered set of
// class polygons plus descriptive metadata. Systems are built once and
// shared read-only; the class slice order is the classifier's tie-break
// order when polygons overlap.
type System struct {
	Name    string
	Classes []ClassPolygon
	Meta    map[string]string
}

// Description returns the system's human-readable description, if any.
func (s *System) Description() string {
	return s.Meta["description"]
}

// ClassNames returns class names in definition order.
func (s *System) ClassNames() []string {
	names := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		names[i] = c.Name
	}
	return names
}

// Class returns the named class polygon, or false if the system has none.
func (s *System) Class(name string) (ClassPolygon, bool) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassPolygon{}, false
}

// Validate checks the system definition: a non-empty name, at least one
// class, unique class names, and per class at least 3 finite vertices.
// A degenerate polygon here would classify silently wrong, so construction
// paths reject it up front.
func (s *System) Validate() error {
	if s.Name == "" {
		return eris.New("texture: system name is empty")
	}
	if len(s.Classes) == 0 {
		return eris.Errorf("texture: system %q has no classes", s.Name)
	}
	seen := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		if c.Name == "" {
			return eris.Errorf("texture: system %q has a class with an empty name", s.Name)
		}
		if seen[c.Name] {
			return eris.Errorf("texture: system %q defines class %q twice", s.Name, c.Name)
		}
		seen[c.Name] = true
		if len(c.Vertices) < 3 {
			return eris.Errorf("texture: system %q class %q has %d vertices, need at least 3",
				s.Name, c.Name, len(c.Vertices))
		}
		for _, v := range c.Vertices {
			if !finite(v.Clay) || !finite(v.Sand) || !finite(v.Silt) {
				return eris.Errorf("texture: system %q class %q has a non-finite vertex",
					s.Name, c.Name)
			}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
