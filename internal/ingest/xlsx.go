package ingest

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// ReadXLSX loads samples from the first sheet of an XLSX workbook. The first
// row is the header; component columns are resolved through cols like CSV.
func ReadXLSX(path string, cols ColumnMap) (*Dataset, error) {
	cols = cols.WithDefaults()

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: xlsx %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("ingest: xlsx %s first sheet is empty", path)
	}

	header := rowToStrings(sheet.Rows[0])
	clayIdx, sandIdx, siltIdx, idIdx, err := columnIndexes(header, cols)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blankRow(cells) {
			continue
		}
		rowNum := i + 2

		clay, err := parseXLSXComponent(cells, clayIdx, cols.Clay, rowNum)
		if err != nil {
			return nil, err
		}
		sand, err := parseXLSXComponent(cells, sandIdx, cols.Sand, rowNum)
		if err != nil {
			return nil, err
		}
		silt, err := parseXLSXComponent(cells, siltIdx, cols.Silt, rowNum)
		if err != nil {
			return nil, err
		}

		var id string
		if idIdx >= 0 && idIdx < len(cells) {
			id = cells[idIdx]
		}
		ds.appendRow(id, clay, sand, silt)
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

func rowToStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = strings.TrimSpace(cell.String())
	}
	return out
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func parseXLSXComponent(cells []string, idx int, col string, row int) (float64, error) {
	if idx >= len(cells) || cells[idx] == "" {
		return 0, eris.Errorf("ingest: xlsx row %d has no %s value", row, col)
	}
	v, err := strconv.ParseFloat(cells[idx], 64)
	if err != nil {
		return 0, eris.Errorf("ingest: xlsx row %d column %s: %q is not numeric", row, col, cells[idx])
	}
	return v, nil
}
