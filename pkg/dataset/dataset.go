// Package dataset holds generated records with a stable, ordered column set
// and serializes them to CSV.
package dataset

import "sort"

// Provenance columns attached by the scenario pipeline.
const (
	ColScenarioName = "scenario_name"
	ColTestType     = "test_type"
)

// MissingCell pads a record that lacks a column, so every exported row
// carries the full column set.
const MissingCell = "MISSING"

// Record maps column name to cell value. Values are strings to keep CSV
// output simple and stable.
type Record map[string]string

// Dataset is an ordered sequence of records sharing one column set.
type Dataset struct {
	columns []string
	colSet  map[string]struct{}
	records []Record
}

// New creates a Dataset with the given initial column order.
func New(columns ...string) *Dataset {
	d := &Dataset{
		columns: make([]string, 0, len(columns)),
		colSet:  make(map[string]struct{}, len(columns)),
	}
	for _, c := range columns {
		d.addColumn(c)
	}
	return d
}

func (d *Dataset) addColumn(name string) {
	if _, ok := d.colSet[name]; ok {
		return
	}
	d.colSet[name] = struct{}{}
	d.columns = append(d.columns, name)
}

// Append adds a record. Columns not seen before are appended to the column
// order (first-seen position), so service responses with extra keys still
// export cleanly.
func (d *Dataset) Append(rec Record) {
	for _, key := range sortedKeys(rec) {
		d.addColumn(key)
	}
	d.records = append(d.records, rec)
}

// Columns returns the column order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Records returns the underlying records. Callers must not mutate them.
func (d *Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Cell returns the value at (row, column), or MissingCell when the record
// lacks the column.
func (d *Dataset) Cell(row int, column string) string {
	v, ok := d.records[row][column]
	if !ok {
		return MissingCell
	}
	return v
}

// FullReport derives a view with the provenance columns ordered first. The
// records are shared with the receiver, never copied or regenerated.
func (d *Dataset) FullReport() *Dataset {
	ordered := make([]string, 0, len(d.columns))
	for _, c := range []string{ColScenarioName, ColTestType} {
		if _, ok := d.colSet[c]; ok {
			ordered = append(ordered, c)
		}
	}
	for _, c := range d.columns {
		if c == ColScenarioName || c == ColTestType {
			continue
		}
		ordered = append(ordered, c)
	}
	return d.view(ordered)
}

// DataOnly derives a view with the provenance columns removed, for handing
// to automation tools. Records are shared with the receiver.
func (d *Dataset) DataOnly() *Dataset {
	ordered := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		if c == ColScenarioName || c == ColTestType {
			continue
		}
		ordered = append(ordered, c)
	}
	return d.view(ordered)
}

func (d *Dataset) view(columns []string) *Dataset {
	v := &Dataset{
		columns: columns,
		colSet:  make(map[string]struct{}, len(columns)),
		records: d.records,
	}
	for _, c := range columns {
		v.colSet[c] = struct{}{}
	}
	return v
}

func sortedKeys(rec Record) []string {
	// Map iteration order is random; keep unseen-column placement stable.
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
