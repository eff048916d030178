package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/vec"
)

// Store keeps finished runs on disk, one directory per run with a
// metadata.json and a samples.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Method    string             `json:"method"`
	Label     string             `json:"label,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Tol       float64            `json:"tol"`
	Start     float64            `json:"start"`
	End       float64            `json:"end"`
	Samples   int                `json:"samples"`
	Accepted  int                `json:"accepted"`
	Rejected  int                `json:"rejected"`
	Evals     int                `json:"evals"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its id.
func (s *Store) Save(label string, cfg experiment.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", result.System, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		System:    result.System,
		Method:    result.Method,
		Label:     label,
		Timestamp: time.Now(),
		Tol:       cfg.Tol,
		Start:     cfg.Start,
		End:       cfg.End,
		Samples:   len(result.Times),
		Accepted:  result.Stats.Accepted,
		Rejected:  result.Stats.Rejected,
		Evals:     result.Stats.Evals,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSamples(csvFile, result.Times, result.States); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for every stored run, oldest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the trajectory back. Rows that fail to parse are
// skipped.
func (s *Store) LoadSamples(runID string) ([]float64, []vec.VecN, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []vec.VecN{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]vec.VecN, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		state := make(vec.VecN, 0, len(record)-1)
		ok := true
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			state = append(state, v)
		}
		if !ok {
			continue
		}
		times = append(times, t)
		states = append(states, state)
	}

	return times, states, nil
}
