package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avalamontes/cepsim/internal/config"
	"github.com/avalamontes/cepsim/internal/cycle"
	"github.com/avalamontes/cepsim/internal/field"
	"github.com/avalamontes/cepsim/internal/metrics"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json, cycles.csv, traces.csv, and optional raw
// field dumps.
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Parallel   bool               `json:"parallel"`
	Config     config.Config      `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
	SaveFields bool               `json:"save_fields"`
}

// CycleRow mirrors one line of cycles.csv.
type CycleRow struct {
	Cycle          int     `json:"cycle"`
	NetLPre        float64 `json:"net_l_pre"`
	NetLPostInfl   float64 `json:"net_l_post_infl"`
	NetLPostReheat float64 `json:"net_l_post_reheat"`
	Lambda         float64 `json:"lambda"`
	VPeak          float64 `json:"v_peak"`
	Helicity       string  `json:"helicity"`
}

func (s *Store) Save(cfg *config.Config, seed int64, results []*cycle.Result) (string, error) {
	runID := fmt.Sprintf("cep_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	lambdas := cycle.Lambdas(results)
	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Parallel:  cfg.Parallel,
		Config:    *cfg,
		Metrics: map[string]float64{
			"mean_lambda": metrics.Mean(lambdas),
			"std_lambda":  metrics.Std(lambdas),
		},
		SaveFields: cfg.SaveFields,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := s.writeCycles(runDir, results); err != nil {
		return "", err
	}
	if err := s.writeTraces(runDir, results); err != nil {
		return "", err
	}

	if cfg.SaveFields {
		for i, res := range results {
			if err := s.writeField(runDir, i+1, res.Field); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeCycles(runDir string, results []*cycle.Result) error {
	f, err := os.Create(filepath.Join(runDir, "cycles.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"cycle", "net_l_pre", "net_l_post_infl", "net_l_post_reheat", "lambda", "v_peak", "helicity"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, res := range results {
		row := []string{
			strconv.Itoa(i + 1),
			formatF(res.NetLPre),
			formatF(res.NetLPostInfl),
			formatF(res.NetLPostReheat),
			formatF(res.Lambda),
			formatF(res.VPeak),
			res.Helicity,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writeTraces(runDir string, results []*cycle.Result) error {
	f, err := os.Create(filepath.Join(runDir, "traces.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"cycle", "step", "net_l"}); err != nil {
		return err
	}

	for i, res := range results {
		for step, v := range res.Trace {
			row := []string{strconv.Itoa(i + 1), strconv.Itoa(step), formatF(v)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Store) writeField(runDir string, cycleNum int, f *field.Field) error {
	out, err := os.Create(filepath.Join(runDir, fmt.Sprintf("field_%d.f64", cycleNum)))
	if err != nil {
		return err
	}
	defer out.Close()
	return f.Write(out)
}

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

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

func (s *Store) LoadCycles(runID string) ([]CycleRow, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "cycles.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]CycleRow, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 7 {
			continue
		}
		rows = append(rows, CycleRow{
			Cycle:          atoi(rec[0]),
			NetLPre:        atof(rec[1]),
			NetLPostInfl:   atof(rec[2]),
			NetLPostReheat: atof(rec[3]),
			Lambda:         atof(rec[4]),
			VPeak:          atof(rec[5]),
			Helicity:       rec[6],
		})
	}

	return rows, nil
}

// LoadTrace returns the oscillation net-L history of one cycle
// (1-indexed).
func (s *Store) LoadTrace(runID string, cycleNum int) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "traces.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := make([]float64, 0)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 || atoi(rec[0]) != cycleNum {
			continue
		}
		trace = append(trace, atof(rec[2]))
	}

	return trace, nil
}

func (s *Store) LoadField(runID string, cycleNum int) (*field.Field, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, fmt.Sprintf("field_%d.f64", cycleNum)))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return field.Read(f)
}

// ExportJSONStdout dumps a run's metadata and per-cycle rows to stdout.
func (s *Store) ExportJSONStdout(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadCycles(runID)
	if err != nil {
		return err
	}

	out := struct {
		Metadata *RunMetadata `json:"metadata"`
		Cycles   []CycleRow   `json:"cycles"`
	}{meta, rows}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
