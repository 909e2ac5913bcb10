package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/soiltex/internal/texture"
)

func usdaClassifier(t *testing.T) *texture.Classifier {
	t.Helper()
	sys, err := texture.Get("USDA")
	require.NoError(t, err)
	c, err := texture.FromSystem(sys)
	require.NoError(t, err)
	return c
}

func TestDiagram_SystemOnly(t *testing.T) {
	svg, err := Diagram(usdaClassifier(t), nil, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(svg), "</svg>"))
	// One filled polygon per class.
	assert.Equal(t, 12, strings.Count(svg, "<polygon "))
	// Title-cased centroid labels for a few classes.
	assert.Contains(t, svg, ">Silt Loam</text>")
	assert.Contains(t, svg, ">Sandy Clay</text>")
	assert.Contains(t, svg, "USDA Soil Texture Triangle")
	// Axis labels.
	assert.Contains(t, svg, "Sand [%]")
	assert.Contains(t, svg, "Clay [%]")
	assert.Contains(t, svg, "Silt [%]")
	// 9 grid values on 3 axes.
	assert.Equal(t, 27, strings.Count(svg, "<line "))
}

func TestDiagram_WithSamples(t *testing.T) {
	samples := &Samples{
		IDs:  []string{"A", "B"},
		Clay: []float64{10, 60},
		Sand: []float64{80, 20},
		Silt: []float64{10, 20},
	}
	svg, err := Diagram(usdaClassifier(t), samples, Options{ShowLabels: true})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(svg, "<circle "))
	assert.Contains(t, svg, ">A</text>")
	assert.Contains(t, svg, ">B</text>")
}

func TestDiagram_SizeBy(t *testing.T) {
	samples := &Samples{
		Clay:   []float64{10, 60, 30},
		Sand:   []float64{80, 20, 40},
		Silt:   []float64{10, 20, 30},
		SizeBy: []float64{1, 2, 3},
	}
	svg, err := Diagram(usdaClassifier(t), samples, Options{SizeMin: 4, SizeMax: 12})
	require.NoError(t, err)

	// Smallest and largest values map to the radius extremes.
	assert.Contains(t, svg, `r="4.00"`)
	assert.Contains(t, svg, `r="12.00"`)
}

func TestDiagram_LengthMismatch(t *testing.T) {
	_, err := Diagram(usdaClassifier(t), &Samples{
		Clay: []float64{10},
		Sand: []float64{80, 5},
		Silt: []float64{10},
	}, Options{})
	require.Error(t, err)
}

func TestDiagram_SizeByMismatch(t *testing.T) {
	_, err := Diagram(usdaClassifier(t), &Samples{
		Clay:   []float64{10},
		Sand:   []float64{80},
		Silt:   []float64{10},
		SizeBy: []float64{1, 2},
	}, Options{})
	require.Error(t, err)
}

func TestMarkerRadii(t *testing.T) {
	t.Run("no size column", func(t *testing.T) {
		radii := markerRadii(nil, 3, 4, 12)
		assert.Equal(t, []float64{4, 4, 4}, radii)
	})

	t.Run("constant column falls back to midpoint", func(t *testing.T) {
		radii := markerRadii([]float64{5, 5, 5}, 3, 4, 12)
		assert.Equal(t, []float64{8, 8, 8}, radii)
	})

	t.Run("linear scaling", func(t *testing.T) {
		radii := markerRadii([]float64{0, 5, 10}, 3, 4, 12)
		assert.InDelta(t, 4, radii[0], 1e-9)
		assert.InDelta(t, 8, radii[1], 1e-9)
		assert.InDelta(t, 12, radii[2], 1e-9)
	})
}

func TestDiagram_EscapesLabels(t *testing.T) {
	sys := &texture.System{
		Name: "X<Y",
		Classes: []texture.ClassPolygon{
			{Name: "a&b", Vertices: []texture.Vertex{{Clay: 100, Sand: 0, Silt: 0}, {Clay: 0, Sand: 100, Silt: 0}, {Clay: 0, Sand: 0, Silt: 100}}},
		},
	}
	c, err := texture.FromSystem(sys)
	require.NoError(t, err)

	svg, err := Diagram(c, nil, Options{})
	require.NoError(t, err)
	assert.Contains(t, svg, "X&lt;Y")
	assert.Contains(t, svg, "A&amp;B")
	assert.NotContains(t, svg, "X<Y ")
}
