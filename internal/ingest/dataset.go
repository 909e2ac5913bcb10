// Package ingest loads tabular soil sample data from CSV, XLSX, and
// shapefile sources and adapts caller column names onto the canonical
// clay/sand/silt fields the classifier operates on.
package ingest

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/soiltex/internal/ternary"
)

// sumTolerance is how far a sample's component sum may drift from the
// ternary total before the row counts as an anomaly. Anomalous rows are
// normalized and classified anyway; the count is surfaced so callers can warn.
const sumTolerance = 1.0

// ColumnMap names the caller's columns for the three required fields plus an
// optional sample identifier. The core never sees these labels; they are
// resolved to indices during ingest.
type ColumnMap struct {
	Clay string
	Sand string
	Silt string
	ID   string
}

// WithDefaults fills empty field names with the canonical column names.
func (m ColumnMap) WithDefaults() ColumnMap {
	if m.Clay == "" {
		m.Clay = "clay"
	}
	if m.Sand == "" {
		m.Sand = "sand"
	}
	if m.Silt == "" {
		m.Silt = "silt"
	}
	return m
}

// Dataset is an ingested sample batch in canonical form. The component
// slices are always equal length; IDs is empty when the source had no
// identifier column.
type Dataset struct {
	IDs  []string
	Clay []float64
	Sand []float64
	Silt []float64

	// Anomalies counts rows whose raw components did not sum to the ternary
	// total within tolerance. Such rows are kept and normalized, not dropped.
	Anomalies int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Clay) }

func (d *Dataset) appendRow(id string, clay, sand, silt float64) {
	if id != "" || len(d.IDs) > 0 {
		for len(d.IDs) < len(d.Clay) {
			d.IDs = append(d.IDs, "")
		}
		d.IDs = append(d.IDs, id)
	}
	d.Clay = append(d.Clay, clay)
	d.Sand = append(d.Sand, sand)
	d.Silt = append(d.Silt, silt)
	if math.Abs(clay+sand+silt-ternary.DefaultTotal) > sumTolerance {
		d.Anomalies++
	}
}

// ReadFile loads a dataset, choosing the reader by file extension
// (.csv, .xlsx, .shp).
func ReadFile(path string, cols ColumnMap) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVFile(path, cols)
	case ".xlsx":
		return ReadXLSX(path, cols)
	case ".shp":
		return ReadShapefile(path, cols)
	default:
		return nil, eris.Errorf("ingest: unsupported input format %q (want .csv, .xlsx, or .shp)",
			filepath.Ext(path))
	}
}

// columnIndexes resolves the mapped column names against a header row,
// case-insensitively. The ID column is optional; the three components are not.
func columnIndexes(header []string, cols ColumnMap) (clay, sand, silt, id int, err error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	clay = find(cols.Clay)
	sand = find(cols.Sand)
	silt = find(cols.Silt)
	id = -1
	if cols.ID != "" {
		id = find(cols.ID)
	}

	var missing []string
	if clay < 0 {
		missing = append(missing, cols.Clay)
	}
	if sand < 0 {
		missing = append(missing, cols.Sand)
	}
	if silt < 0 {
		missing = append(missing, cols.Silt)
	}
	if len(missing) > 0 {
		return 0, 0, 0, 0, eris.Errorf("ingest: columns %s not found in header %v",
			strings.Join(missing, ", "), header)
	}
	return clay, sand, silt, id, nil
}
