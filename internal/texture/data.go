package texture

// Built-in classification systems. Vertices are (clay, sand, silt) percent
// triples tracing each class boundary; classes are listed coarse to fine,
// which fixes the classifier's tie-break order along shared edges.

// usdaSystem is the 12-class USDA soil texture triangle.
func usdaSystem() *System {
	return &System{
		Name: "USDA",
		Meta: map[string]string{
			"description": "United States Department of Agriculture (USDA) Soil Texture Classification",
		},
		Classes: []ClassPolygon{
			{Name: "sand", Vertices: []Vertex{
				{0, 100, 0}, {10, 90, 0}, {0, 85, 15},
			}},
			{Name: "loamy sand", Vertices: []Vertex{
				{10, 90, 0}, {15, 85, 0}, {0, 70, 30}, {0, 85, 15},
			}},
			{Name: "sandy loam", Vertices: []Vertex{
				{15, 85, 0}, {20, 80, 0}, {20, 52, 28}, {7, 52, 41},
				{7, 43, 50}, {0, 50, 50}, {0, 70, 30},
			}},
			{Name: "loam", Vertices: []Vertex{
				{7, 43, 50}, {7, 52, 41}, {20, 52, 28}, {27, 45, 28}, {27, 23, 50},
			}},
			{Name: "silt loam", Vertices: []Vertex{
				{0, 50, 50}, {27, 23, 50}, {27, 0, 73}, {12, 0, 88},
				{12, 8, 80}, {0, 20, 80},
			}},
			{Name: "silt", Vertices: []Vertex{
				{12, 8, 80}, {12, 0, 88}, {0, 0, 100}, {0, 20, 80},
			}},
			{Name: "sandy clay loam", Vertices: []Vertex{
				{20, 80, 0}, {35, 65, 0}, {35, 45, 20}, {27, 45, 28}, {20, 52, 28},
			}},
			{Name: "clay loam", Vertices: []Vertex{
				{27, 20, 53}, {27, 45, 28}, {40, 45, 15}, {40, 20, 40},
			}},
			{Name: "silty clay loam", Vertices: []Vertex{
				{27, 0, 73}, {27, 20, 53}, {40, 20, 40}, {40, 0, 60},
			}},
			{Name: "sandy clay", Vertices: []Vertex{
				{35, 65, 0}, {55, 45, 0}, {35, 45, 20},
			}},
			{Name: "silty clay", Vertices: []Vertex{
				{40, 0, 60}, {40, 20, 40}, {60, 0, 40},
			}},
			{Name: "clay", Vertices: []Vertex{
				{55, 45, 0}, {100, 0, 0}, {60, 0, 40}, {40, 20, 40}, {40, 45, 15},
			}},
		},
	}
}

// hypresSystem is the 5-class HYPRES (FAO) texture classification.
func hypresSystem() *System {
	return &System{
		Name: "HYPRES",
		Meta: map[string]string{
			"description": "The HYdraulic PRoperties of European Soils (HYPRES) is a European framework for classifying soils based on their hydrologic properties",
		},
		Classes: []ClassPolygon{
			{Name: "coarse", Vertices: []Vertex{
				{0, 100, 0}, {18, 82, 0}, {18, 65, 17}, {0, 65, 35},
			}},
			{Name: "medium", Vertices: []Vertex{
				{18, 82, 0}, {35, 65, 0}, {35, 15, 50}, {0, 15, 85},
				{0, 65, 35}, {18, 65, 17},
			}},
			{Name: "medium fine", Vertices: []Vertex{
				{0, 15, 85}, {35, 15, 50}, {35, 0, 65}, {0, 0, 100},
			}},
			{Name: "fine", Vertices: []Vertex{
				{35, 65, 0}, {60, 40, 0}, {60, 0, 40}, {35, 0, 65},
			}},
			{Name: "very fine", Vertices: []Vertex{
				{60, 40, 0}, {100, 0, 0}, {60, 0, 40},
			}},
		},
	}
}

func builtinSystems() []*System {
	return []*System{usdaSystem(), hypresSystem()}
}
