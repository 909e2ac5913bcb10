// Package render draws texture systems and sample points as SVG ternary
// diagrams.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/soiltex/internal/ternary"
	"github.com/sells-group/soiltex/internal/texture"
)

// set3Palette approximates the Set3 qualitative colormap the original
// diagrams shipped with. Classes beyond the palette length cycle.
var set3Palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Samples carries optional scatter points for the diagram. Component slices
// must be equal length; IDs and SizeBy may be empty or match that length.
type Samples struct {
	IDs    []string
	Clay   []float64
	Sand   []float64
	Silt   []float64
	SizeBy []float64
}

// Options configures diagram output.
type Options struct {
	Width      int     // pixel width, default 700
	ShowLabels bool    // draw sample IDs on markers
	SizeMin    float64 // marker radius range for SizeBy scaling
	SizeMax    float64
	Palette    []string // overrides the default class fill palette
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 700
	}
	if o.SizeMin <= 0 {
		o.SizeMin = 4
	}
	if o.SizeMax <= o.SizeMin {
		o.SizeMax = o.SizeMin * 3
	}
	if len(o.Palette) == 0 {
		o.Palette = set3Palette
	}
	return o
}

const margin = 60.0

// Diagram renders the classifier's system, grid, and optional samples as a
// complete SVG document.
func Diagram(c *texture.Classifier, samples *Samples, opts Options) (string, error) {
	opts = opts.withDefaults()

	if samples != nil {
		if len(samples.Sand) != len(samples.Clay) || len(samples.Silt) != len(samples.Clay) {
			return "", eris.New("render: sample component lengths differ")
		}
		if len(samples.SizeBy) > 0 && len(samples.SizeBy) != len(samples.Clay) {
			return "", eris.Errorf("render: %d size values for %d samples",
				len(samples.SizeBy), len(samples.Clay))
		}
	}

	width := float64(opts.Width)
	scale := (width - 2*margin) / ternary.DefaultTotal
	triHeight := math.Sqrt(3) / 2 * ternary.DefaultTotal
	height := triHeight*scale + 2*margin

	// SVG y grows downward; flip the projected y.
	toSVG := func(p ternary.Point) (float64, float64) {
		return margin + p.X*scale, height - margin - p.Y*scale
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%.0f" height="%.0f" fill="white"/>`+"\n", width, height)

	drawClasses(&b, c, opts, toSVG)
	drawGrid(&b, toSVG)
	drawAxisLabels(&b, toSVG)
	if samples != nil {
		drawSamples(&b, samples, opts, toSVG)
	}

	title := fmt.Sprintf("%s Soil Texture Triangle", c.System().Name)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="16" text-anchor="middle" font-family="sans-serif">%s</text>`+"\n",
		width/2, margin/2, escape(title))

	b.WriteString("</svg>\n")
	return b.String(), nil
}

func drawClasses(b *strings.Builder, c *texture.Classifier, opts Options, toSVG func(ternary.Point) (float64, float64)) {
	titler := cases.Title(language.English)

	for i, class := range c.ClassOrder() {
		ring := c.Ring(class)
		fill := opts.Palette[i%len(opts.Palette)]

		var pts []string
		for _, p := range ring.Points() {
			x, y := toSVG(p)
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", x, y))
		}
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" fill-opacity="0.5" stroke="black" stroke-width="1"/>`+"\n",
			strings.Join(pts, " "), fill)

		cx, cy := toSVG(ring.Centroid())
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" font-family="sans-serif">%s</text>`+"\n",
			cx, cy, escape(titler.String(class)))
	}
}

// drawGrid draws lines of constant clay, sand, and silt every 10 units.
func drawGrid(b *strings.Builder, toSVG func(ternary.Point) (float64, float64)) {
	line := func(a, c ternary.Point) {
		x1, y1 := toSVG(a)
		x2, y2 := toSVG(c)
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="gray" stroke-width="0.4" stroke-opacity="0.6"/>`+"\n",
			x1, y1, x2, y2)
	}
	project := func(clay, sand, silt float64) ternary.Point {
		return ternary.ToCartesian(clay, sand, silt, ternary.DefaultTotal)
	}

	for v := 10.0; v < ternary.DefaultTotal; v += 10 {
		rest := ternary.DefaultTotal - v
		line(project(v, rest, 0), project(v, 0, rest))     // constant clay
		line(project(rest, v, 0), project(0, v, rest))     // constant sand
		line(project(rest, 0, v), project(0, rest, v))     // constant silt
	}
}

func drawAxisLabels(b *strings.Builder, toSVG func(ternary.Point) (float64, float64)) {
	project := func(clay, sand, silt float64) ternary.Point {
		return ternary.ToCartesian(clay, sand, silt, ternary.DefaultTotal)
	}

	// Sand along the base, clay up the left edge, silt down the right edge.
	x, y := toSVG(project(0, 50, 0))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle" font-family="sans-serif">Sand [%%]</text>`+"\n",
		x, y+30)

	x, y = toSVG(project(50, 25, 25))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle" font-family="sans-serif" transform="rotate(-60 %.1f %.1f)">Clay [%%]</text>`+"\n",
		x-40, y-20, x-40, y-20)

	x, y = toSVG(project(0, 50, 50))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle" font-family="sans-serif" transform="rotate(60 %.1f %.1f)">Silt [%%]</text>`+"\n",
		x+40, y-20, x+40, y-20)
}

func drawSamples(b *strings.Builder, samples *Samples, opts Options, toSVG func(ternary.Point) (float64, float64)) {
	radii := markerRadii(samples.SizeBy, len(samples.Clay), opts.SizeMin, opts.SizeMax)

	for i := range samples.Clay {
		p := ternary.ToCartesian(samples.Clay[i], samples.Sand[i], samples.Silt[i], ternary.DefaultTotal)
		x, y := toSVG(p)
		fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="black"/>`+"\n", x, y, radii[i])

		if opts.ShowLabels && i < len(samples.IDs) && samples.IDs[i] != "" {
			fmt.Fprintf(b, `<text x="%.2f" y="%.2f" font-size="7" text-anchor="middle" fill="white" font-family="sans-serif">%s</text>`+"\n",
				x, y+2, escape(samples.IDs[i]))
		}
	}
}

// markerRadii maps size values onto [sizeMin, sizeMax]. With no size column
// every marker gets sizeMin; a constant or non-finite column falls back to
// the midpoint so markers stay visible.
func markerRadii(sizeBy []float64, n int, sizeMin, sizeMax float64) []float64 {
	radii := make([]float64, n)
	if len(sizeBy) == 0 {
		for i := range radii {
			radii[i] = sizeMin
		}
		return radii
	}

	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range sizeBy {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}
	if vmin >= vmax {
		mid := (sizeMin + sizeMax) / 2
		for i := range radii {
			radii[i] = mid
		}
		return radii
	}

	for i, v := range sizeBy {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			radii[i] = (sizeMin + sizeMax) / 2
			continue
		}
		radii[i] = sizeMin + (v-vmin)/(vmax-vmin)*(sizeMax-sizeMin)
	}
	return radii
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
