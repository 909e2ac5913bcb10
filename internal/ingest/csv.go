package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadCSV loads samples from CSV data with a header row. Column names are
// resolved through cols; rows with non-numeric component values are a hard
// error naming the row and column, while rows that merely fail to sum to 100
// are kept and counted as anomalies.
func ReadCSV(r io.Reader, cols ColumnMap) (*Dataset, error) {
	cols = cols.WithDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("ingest: csv is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}

	clayIdx, sandIdx, siltIdx, idIdx, err := columnIndexes(header, cols)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read csv row %d", row+1)
		}
		row++

		clay, err := parseComponent(record, clayIdx, cols.Clay, row)
		if err != nil {
			return nil, err
		}
		sand, err := parseComponent(record, sandIdx, cols.Sand, row)
		if err != nil {
			return nil, err
		}
		silt, err := parseComponent(record, siltIdx, cols.Silt, row)
		if err != nil {
			return nil, err
		}

		var id string
		if idIdx >= 0 && idIdx < len(record) {
			id = strings.TrimSpace(record[idIdx])
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

// ReadCSVFile loads samples from a CSV file on disk.
func ReadCSVFile(path string, cols ColumnMap) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, cols)
}

func parseComponent(record []string, idx int, col string, row int) (float64, error) {
	if idx >= len(record) {
		return 0, eris.Errorf("ingest: row %d has no %s column", row, col)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, eris.Errorf("ingest: row %d column %s: %q is not numeric", row, col, record[idx])
	}
	return v, nil
}
