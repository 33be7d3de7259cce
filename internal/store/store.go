package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Store keeps one directory per run holding metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "create run store")
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Method     string             `json:"method"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Bodies     int                `json:"bodies"`
	Dim        int                `json:"dim"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its ID. meta.ID and meta.Timestamp are
// filled in.
func (s *Store) Save(meta RunMetadata, traj *Trajectory) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	meta.Timestamp = now
	meta.Bodies = traj.Bodies
	meta.Dim = traj.Dim

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run directory")
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, "states.csv"), traj); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode metadata")
}

func writeCSV(path string, traj *Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create states")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, traj.Columns()...)); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, row := range traj.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(traj.Times[i], 'g', -1, 64))
		for _, val := range row {
			rec = append(rec, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush states")
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "read run store")
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "load run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode run %s", runID)
	}
	return &meta, nil
}

// LoadTrajectory reads states.csv back. Body count and dimension come from
// the run's metadata.
func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, errors.Wrapf(err, "open states of %s", runID)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read states of %s", runID)
	}

	traj := &Trajectory{Bodies: meta.Bodies, Dim: meta.Dim}
	for i, record := range records {
		if i == 0 {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			vals[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "states of %s, row %d", runID, i)
			}
		}
		traj.Times = append(traj.Times, vals[0])
		traj.Rows = append(traj.Rows, vals[1:])
	}
	return traj, nil
}
