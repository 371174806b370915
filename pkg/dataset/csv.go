package dataset

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the dataset with its column order as the header. Records
// missing a column are padded with MissingCell rather than omitted.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns()); err != nil {
		return err
	}
	row := make([]string, len(d.columns))
	for i := range d.records {
		for j, col := range d.columns {
			row[j] = d.Cell(i, col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
