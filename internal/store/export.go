package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type ExportData struct {
	RunMetadata
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	States  [][]float64 `json:"states"`
}

func NewExport(meta RunMetadata, traj *Trajectory) ExportData {
	return ExportData{
		RunMetadata: meta,
		Columns:     traj.Columns(),
		Times:       traj.Times,
		States:      traj.Rows,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(data), "encode export")
}

func ExportJSON(path string, data ExportData) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export")
	}
	defer f.Close()
	return WriteJSON(f, data)
}

// ExportRun loads a stored run and writes it as one JSON document.
func (s *Store) ExportRun(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return WriteJSON(w, NewExport(*meta, traj))
}
