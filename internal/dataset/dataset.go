// Package dataset loads tabulated time series from CSV files, such as
// measured ambient temperature profiles or logged equipment data. The
// first column is time, the remaining columns are named by the header.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// ErrFormat reports a file that does not look like a time series table.
var ErrFormat = errors.New("dataset: bad format")

// Dataset is an in-memory time series table. Rows are sorted by time.
type Dataset struct {
	Columns []string    // names of the value columns, header order
	Times   []float64   // one entry per row
	Records [][]float64 // Records[i] aligns with Times[i]
}

// Load reads a CSV time series. Rows that fail to parse are skipped, a
// missing or single-column header is an error.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: %s has no usable header", ErrFormat, path)
	}

	ds := &Dataset{Columns: records[0][1:]}
	width := len(ds.Columns)
	for _, record := range records[1:] {
		if len(record) != width+1 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, width)
		ok := true
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, v)
		}
		if !ok {
			continue
		}
		ds.Times = append(ds.Times, t)
		ds.Records = append(ds.Records, row)
	}
	if len(ds.Times) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrFormat, path)
	}

	if !sort.Float64sAreSorted(ds.Times) {
		idx := make([]int, len(ds.Times))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return ds.Times[idx[a]] < ds.Times[idx[b]] })
		times := make([]float64, len(idx))
		rows := make([][]float64, len(idx))
		for i, j := range idx {
			times[i] = ds.Times[j]
			rows[i] = ds.Records[j]
		}
		ds.Times, ds.Records = times, rows
	}
	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int { return len(ds.Times) }

// Span returns the first and last sample times.
func (ds *Dataset) Span() (t0, t1 float64) {
	return ds.Times[0], ds.Times[len(ds.Times)-1]
}

// ColumnIndex resolves a header name to its value column index.
func (ds *Dataset) ColumnIndex(name string) (int, error) {
	for i, c := range ds.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no column %q (have %v)", ErrFormat, name, ds.Columns)
}

// Column returns one value column as a slice.
func (ds *Dataset) Column(name string) ([]float64, error) {
	idx, err := ds.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ds.Records))
	for i, row := range ds.Records {
		out[i] = row[idx]
	}
	return out, nil
}

// At linearly interpolates column col at time t, clamping outside the
// sampled span.
func (ds *Dataset) At(col int, t float64) float64 {
	times := ds.Times
	if t <= times[0] {
		return ds.Records[0][col]
	}
	last := len(times) - 1
	if t >= times[last] {
		return ds.Records[last][col]
	}
	i := sort.SearchFloat64s(times, t)
	lo, hi := i-1, i
	frac := (t - times[lo]) / (times[hi] - times[lo])
	a, b := ds.Records[lo][col], ds.Records[hi][col]
	return a + frac*(b-a)
}

// Grid returns n uniformly spaced sample times across the dataset span,
// suitable as an output grid for the integrator.
func (ds *Dataset) Grid(n int) []float64 {
	t0, t1 := ds.Span()
	return Uniform(t0, t1, n)
}

// Uniform returns n evenly spaced values from t0 to t1 inclusive.
func Uniform(t0, t1 float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{t0}
	}
	out := make([]float64, n)
	step := (t1 - t0) / float64(n-1)
	for i := range out {
		out[i] = t0 + float64(i)*step
	}
	out[n-1] = t1
	return out
}
