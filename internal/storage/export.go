package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/vec"
)

// ExportData is the JSON shape of one exported run.
type ExportData struct {
	System   string             `json:"system"`
	Method   string             `json:"method"`
	Samples  int                `json:"samples"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Accepted int                `json:"accepted"`
	Rejected int                `json:"rejected"`
	Evals    int                `json:"evals"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes one run as indented JSON.
func ExportJSON(w io.Writer, result *experiment.Result) error {
	data := ExportData{
		System:   result.System,
		Method:   result.Method,
		Samples:  len(result.Times),
		Times:    result.Times,
		States:   make([][]float64, len(result.States)),
		Accepted: result.Stats.Accepted,
		Rejected: result.Stats.Rejected,
		Evals:    result.Stats.Evals,
		Metrics:  result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes one run as a samples table.
func ExportCSV(w io.Writer, result *experiment.Result) error {
	return writeSamples(w, result.Times, result.States)
}

func writeSamples(w io.Writer, times []float64, states []vec.VecN) error {
	cw := csv.NewWriter(w)

	if len(states) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := make([]string, 0, len(states[i])+1)
		row = append(row, strconv.FormatFloat(times[i], 'g', -1, 64))
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
