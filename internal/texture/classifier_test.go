package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/soiltex/internal/ternary"
)

func usdaClassifier(t *testing.T) *Classifier {
	t.Helper()
	sys, err := Get("USDA")
	require.NoError(t, err)
	c, err := FromSystem(sys)
	require.NoError(t, err)
	return c
}

func TestFromSystem_RejectsDegenerate(t *testing.T) {
	sys := &System{
		Name: "BAD",
		Classes: []ClassPolygon{
			{Name: "line", Vertices: []Vertex{{100, 0, 0}, {0, 100, 0}}},
		},
	}
	_, err := FromSystem(sys)
	require.Error(t, err)
}

func TestFromSystem_ClosesAllRings(t *testing.T) {
	for _, sys := range builtinSystems() {
		c, err := FromSystem(sys)
		require.NoError(t, err)
		for _, class := range c.ClassOrder() {
			pts := c.Ring(class).Points()
			assert.InDelta(t, pts[0].X, pts[len(pts)-1].X, 1e-9, "%s/%s x", sys.Name, class)
			assert.InDelta(t, pts[0].Y, pts[len(pts)-1].Y, 1e-9, "%s/%s y", sys.Name, class)
		}
	}
}

func TestFromSystem_Deterministic(t *testing.T) {
	sys, err := Get("USDA")
	require.NoError(t, err)
	a, err := FromSystem(sys)
	require.NoError(t, err)
	b, err := FromSystem(sys)
	require.NoError(t, err)

	require.Equal(t, a.ClassOrder(), b.ClassOrder())
	for _, class := range a.ClassOrder() {
		assert.Equal(t, a.Ring(class).FlatCoords(), b.Ring(class).FlatCoords(), class)
	}
}

func TestClassify_Apexes(t *testing.T) {
	c := usdaClassifier(t)

	labels, err := c.Classify(
		[]float64{100, 0, 0},
		[]float64{0, 100, 0},
		[]float64{0, 0, 100},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"clay", "sand", "silt"}, labels)
}

func TestClassify_Centroid(t *testing.T) {
	c := usdaClassifier(t)

	labels, err := c.Classify([]float64{33.3}, []float64{33.3}, []float64{33.4})
	require.NoError(t, err)
	assert.Equal(t, "clay loam", labels[0])
}

func TestClassify_KnownSamples(t *testing.T) {
	c := usdaClassifier(t)

	tests := []struct {
		name             string
		clay, sand, silt float64
		want             string
	}{
		{"pure sand corner", 3, 92, 5, "sand"},
		{"loam center", 18, 40, 42, "loam"},
		{"silt loam", 15, 20, 65, "silt loam"},
		{"heavy clay", 70, 15, 15, "clay"},
		{"silty clay", 45, 5, 50, "silty clay"},
		{"sandy clay loam", 28, 55, 17, "sandy clay loam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ClassifyPoint(tt.clay, tt.sand, tt.silt)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_HYPRES(t *testing.T) {
	sys, err := Get("HYPRES")
	require.NoError(t, err)
	c, err := FromSystem(sys)
	require.NoError(t, err)

	assert.Equal(t, "coarse", c.ClassifyPoint(5, 90, 5))
	assert.Equal(t, "medium", c.ClassifyPoint(33.3, 33.3, 33.4))
	assert.Equal(t, "medium fine", c.ClassifyPoint(20, 5, 75))
	assert.Equal(t, "fine", c.ClassifyPoint(50, 25, 25))
	assert.Equal(t, "very fine", c.ClassifyPoint(80, 10, 10))
}

func TestClassify_NormalizesOddSums(t *testing.T) {
	c := usdaClassifier(t)

	// Fractions instead of percents still land in the same class.
	got := c.ClassifyPoint(0.7, 0.15, 0.15)
	assert.Equal(t, "clay", got)
}

func TestClassify_NegativeComponent(t *testing.T) {
	c := usdaClassifier(t)

	// Invalid sample: must not panic, any label (including Unknown) is fine.
	labels, err := c.Classify([]float64{-5}, []float64{50}, []float64{55})
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.NotEmpty(t, labels[0])
}

func TestClassify_EmptyBatch(t *testing.T) {
	c := usdaClassifier(t)
	labels, err := c.Classify(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestClassify_LengthMismatch(t *testing.T) {
	c := usdaClassifier(t)
	_, err := c.Classify([]float64{1}, []float64{1, 2}, []float64{1})
	require.Error(t, err)
}

func TestClassify_OutputLengthMatchesInput(t *testing.T) {
	c := usdaClassifier(t)

	n := 257
	clay := make([]float64, n)
	sand := make([]float64, n)
	silt := make([]float64, n)
	for i := range clay {
		clay[i] = float64(i % 101)
		sand[i] = float64((i * 7) % 101)
		silt[i] = float64((i * 13) % 101)
	}

	labels, err := c.Classify(clay, sand, silt)
	require.NoError(t, err)
	require.Len(t, labels, n)
	for i, label := range labels {
		assert.NotEmpty(t, label, "row %d", i)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	sys, err := Get("USDA")
	require.NoError(t, err)

	clay := []float64{10, 40, 33.3, 0, 90}
	sand := []float64{80, 30, 33.3, 0, 5}
	silt := []float64{10, 30, 33.4, 0, 5}

	first, err := usdaClassifier(t).Classify(clay, sand, silt)
	require.NoError(t, err)

	fresh, err := FromSystem(sys)
	require.NoError(t, err)
	second, err := fresh.Classify(clay, sand, silt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_OverlapTieBreak(t *testing.T) {
	// Two identical triangles registered as X then Y: every contained point
	// must always resolve to X, whatever the batch looks like.
	tri := []Vertex{{100, 0, 0}, {0, 100, 0}, {0, 0, 100}}
	sys := &System{
		Name: "OVERLAP",
		Classes: []ClassPolygon{
			{Name: "X", Vertices: tri},
			{Name: "Y", Vertices: tri},
		},
	}
	c, err := FromSystem(sys)
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Y"}, c.ClassOrder())

	single, err := c.Classify([]float64{30}, []float64{30}, []float64{40})
	require.NoError(t, err)
	assert.Equal(t, "X", single[0])

	// Same point embedded in a larger batch gets the same answer.
	batch, err := c.Classify(
		[]float64{10, 30, 80},
		[]float64{80, 30, 10},
		[]float64{10, 40, 10},
	)
	require.NoError(t, err)
	for i, label := range batch {
		assert.Equal(t, "X", label, "row %d", i)
	}
}

func TestClassify_BoundaryBetweenAdjacentClasses(t *testing.T) {
	c := usdaClassifier(t)

	// (40, 20, 40) is a shared vertex of clay loam, silty clay loam, silty
	// clay and clay. Boundary points are inclusive, so the earliest of those
	// in USDA order wins: clay loam.
	got := c.ClassifyPoint(40, 20, 40)
	assert.Equal(t, "clay loam", got)
}

func TestClassify_UnknownOutsideTriangle(t *testing.T) {
	tri := []Vertex{{50, 50, 0}, {50, 0, 50}, {100, 0, 0}}
	sys := &System{
		Name:    "PARTIAL",
		Classes: []ClassPolygon{{Name: "only", Vertices: tri}},
	}
	c, err := FromSystem(sys)
	require.NoError(t, err)

	// A sample far from the single class polygon stays Unknown.
	labels, err := c.Classify([]float64{0}, []float64{100}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, Unknown, labels[0])
}

func TestClassifier_Geometry(t *testing.T) {
	c := usdaClassifier(t)

	poly := c.Geometry("loam")
	require.NotNil(t, poly)
	ring := c.Ring("loam")
	assert.Equal(t, ring.FlatCoords(), poly.FlatCoords())

	assert.Nil(t, c.Geometry("nope"))
}

func TestClassify_ScalarMatchesBatch(t *testing.T) {
	c := usdaClassifier(t)

	clay := []float64{5, 25, 45, 33.3, 0}
	sand := []float64{90, 35, 10, 33.3, 0}
	silt := []float64{5, 40, 45, 33.4, 0}

	batch, err := c.Classify(clay, sand, silt)
	require.NoError(t, err)
	for i := range clay {
		assert.Equal(t, batch[i], c.ClassifyPoint(clay[i], sand[i], silt[i]), "row %d", i)
	}
}

func TestClassify_ProjectionSharedWithTransform(t *testing.T) {
	// The classifier and the transform must agree on the projection; a class
	// vertex projected by hand lands inside (boundary-inclusive) its ring.
	c := usdaClassifier(t)
	sys := c.System()
	for _, class := range sys.Classes {
		v := class.Vertices[0]
		p := ternary.ToCartesian(v.Clay, v.Sand, v.Silt, ternary.DefaultTotal)
		assert.True(t, c.Ring(class.Name).Contains(p), "%s vertex not inside own ring", class.Name)
	}
}
