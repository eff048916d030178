package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/vec"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		System: "oscillator",
		Method: "dopri5",
		Times:  []float64{0, 0.5, 1},
		States: []vec.VecN{
			{1, 0},
			{0.8775825618903728, -0.479425538604203},
			{0.5403023058681398, -0.8414709848078965},
		},
		Stats:   solver.Stats{Accepted: 4, Rejected: 1, Evals: 31},
		Metrics: map[string]float64{"energy_drift": 2.5e-7},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := experiment.Config{Tol: 1e-6, Start: 0, End: 1}
	runID, err := st.Save("baseline", cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.System != "oscillator" || meta.Method != "dopri5" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Label != "baseline" {
		t.Errorf("label = %q", meta.Label)
	}
	if meta.Tol != 1e-6 || meta.Samples != 3 {
		t.Errorf("meta echo = %+v", meta)
	}
	if meta.Evals != 31 {
		t.Errorf("evals = %d, want 31", meta.Evals)
	}
	if meta.Metrics["energy_drift"] != 2.5e-7 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	times, states, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(times) != 3 || len(states) != 3 {
		t.Fatalf("loaded %d times, %d states", len(times), len(states))
	}
	// The 'g'/-1 format round-trips float64 exactly.
	if states[1][0] != 0.8775825618903728 {
		t.Errorf("states[1][0] = %v, want bit-exact round trip", states[1][0])
	}
}

func TestListSortsByTimestamp(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := experiment.Config{}
	for i := 0; i < 3; i++ {
		if _, err := st.Save("", cfg, sampleResult()); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("listed %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.Before(runs[i-1].Timestamp) {
			t.Error("runs not sorted oldest first")
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs from missing dir", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if data.System != "oscillator" || data.Samples != 3 {
		t.Errorf("data = %+v", data)
	}
	if len(data.States) != 3 || len(data.States[0]) != 2 {
		t.Errorf("states shape = %v", data.States)
	}
	if math.Abs(data.States[2][1]+0.8414709848078965) > 1e-15 {
		t.Errorf("states[2][1] = %v", data.States[2][1])
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv has %d lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "time,x0,x1" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,1,0") {
		t.Errorf("first row = %q", lines[1])
	}
}
