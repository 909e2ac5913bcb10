package ingest

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadShapefile loads samples from a point shapefile's DBF attributes.
// Survey datasets often ship texture fractions as attribute columns on
// sample-site points; the geometry itself is ignored here.
func ReadShapefile(path string, cols ColumnMap) (*Dataset, error) {
	cols = cols.WithDefaults()

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// DBF field names are fixed-width and NUL padded.
	fields := reader.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.TrimRight(f.String(), "\x00")
	}

	clayIdx, sandIdx, siltIdx, idIdx, err := columnIndexes(header, cols)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	row := 0
	for reader.Next() {
		row++

		clay, err := parseDBFAttr(reader, clayIdx, cols.Clay, row)
		if err != nil {
			return nil, err
		}
		sand, err := parseDBFAttr(reader, sandIdx, cols.Sand, row)
		if err != nil {
			return nil, err
		}
		silt, err := parseDBFAttr(reader, siltIdx, cols.Silt, row)
		if err != nil {
			return nil, err
		}

		var id string
		if idIdx >= 0 {
			id = cleanAttr(reader.Attribute(idIdx))
		}
		ds.appendRow(id, clay, sand, silt)
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "ingest: read shapefile %s", path)
	}

	if ds.Anomalies > 0 {
		zap.L().Warn("samples do not sum to 100, normalizing",
			zap.String("component", "ingest"),
			zap.Int("rows", ds.Anomalies),
			zap.Int("total", ds.Len()),
		)
	}
	return ds, nil
}

func cleanAttr(v string) string {
	return strings.TrimSpace(strings.TrimRight(v, "\x00"))
}

func parseDBFAttr(reader *shp.Reader, idx int, col string, row int) (float64, error) {
	raw := cleanAttr(reader.Attribute(idx))
	if raw == "" {
		return 0, eris.Errorf("ingest: shapefile record %d has no %s value", row, col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Errorf("ingest: shapefile record %d column %s: %q is not numeric", row, col, raw)
	}
	return v, nil
}
