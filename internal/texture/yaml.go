package texture

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// systemDoc is the YAML schema for user-supplied texture systems. Classes
// are a list, not a map, so definition order — the tie-break order —
// survives parsing.
//
//	name: MYSYS
//	description: custom classes
//	classes:
//	  - name: fine
//	    vertices: [[35, 65, 0], [60, 40, 0], [60, 0, 40], [35, 0, 65]]
type systemDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Classes     []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name     string       `yaml:"name"`
	Vertices [][3]float64 `yaml:"vertices"`
}

// ParseSystem decodes and validates a YAML system definition.
func ParseSystem(data []byte) (*System, error) {
	var doc systemDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "texture: parse system yaml")
	}

	sys := &System{
		Name: doc.Name,
		Meta: map[string]string{"description": doc.Description},
	}
	for _, c := range doc.Classes {
		verts := make([]Vertex, len(c.Vertices))
		for i, v := range c.Vertices {
			verts[i] = Vertex{Clay: v[0], Sand: v[1], Silt: v[2]}
		}
		sys.Classes = append(sys.Classes, ClassPolygon{Name: c.Name, Vertices: verts})
	}

	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

// LoadSystemFile reads a YAML system definition from disk.
func LoadSystemFile(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "texture: read system file %s", path)
	}
	return ParseSystem(data)
}
