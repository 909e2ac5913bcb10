package ingest

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/soiltex/internal/texture"
)

// classifiedRow is the canonical output schema: the ingested components plus
// the assigned class.
type classifiedRow struct {
	SampleID string  `csv:"sample_id,omitempty"`
	Clay     float64 `csv:"clay"`
	Sand     float64 `csv:"sand"`
	Silt     float64 `csv:"silt"`
	Class    string  `csv:"texture_class"`
}

// WriteClassifiedCSV writes the dataset with one texture_class label per row.
// labels must have one entry per sample; rows the classifier could not place
// carry the Unknown sentinel like any other label.
func WriteClassifiedCSV(w io.Writer, ds *Dataset, labels []string) error {
	if len(labels) != ds.Len() {
		return eris.Errorf("ingest: %d labels for %d samples", len(labels), ds.Len())
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for i := 0; i < ds.Len(); i++ {
		row := classifiedRow{
			Clay:  ds.Clay[i],
			Sand:  ds.Sand[i],
			Silt:  ds.Silt[i],
			Class: labels[i],
		}
		if i < len(ds.IDs) {
			row.SampleID = ds.IDs[i]
		}
		if row.Class == "" {
			row.Class = texture.Unknown
		}
		if err := enc.Encode(row); err != nil {
			return eris.Wrapf(err, "ingest: encode row %d", i+1)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "ingest: flush csv")
	}
	return nil
}
