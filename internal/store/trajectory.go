package store

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// Trajectory is a flat, dimension-erased copy of recorded snapshots. Each
// row holds, per body, its position components then its velocity components.
type Trajectory struct {
	Bodies int
	Dim    int
	Times  []float64
	Rows   [][]float64
}

func Flatten[S vec.Scalar, V vec.Vector[S, V]](r *sim.Result[S, V]) *Trajectory {
	dim := vec.Dim[S, V]()
	traj := &Trajectory{Dim: dim, Times: r.Times}
	if len(r.Snapshots) > 0 {
		traj.Bodies = len(r.Snapshots[0])
	}
	for _, snap := range r.Snapshots {
		row := make([]float64, 0, len(snap)*2*dim)
		for _, b := range snap {
			for j := 0; j < dim; j++ {
				row = append(row, float64(b.Pos.Axis(j)))
			}
			for j := 0; j < dim; j++ {
				row = append(row, float64(b.Vel.Axis(j)))
			}
		}
		traj.Rows = append(traj.Rows, row)
	}
	return traj
}

var axisNames = []string{"x", "y", "z", "w"}

func (t *Trajectory) Columns() []string {
	cols := make([]string, 0, t.Bodies*2*t.Dim)
	for b := 0; b < t.Bodies; b++ {
		for j := 0; j < t.Dim; j++ {
			cols = append(cols, fmt.Sprintf("b%d_%s", b, axisNames[j]))
		}
		for j := 0; j < t.Dim; j++ {
			cols = append(cols, fmt.Sprintf("b%d_v%s", b, axisNames[j]))
		}
	}
	return cols
}

// Position returns the position of body b in row i.
func (t *Trajectory) Position(i, b int) []float64 {
	off := b * 2 * t.Dim
	return t.Rows[i][off : off+t.Dim]
}

func (t *Trajectory) Velocity(i, b int) []float64 {
	off := b*2*t.Dim + t.Dim
	return t.Rows[i][off : off+t.Dim]
}
