package compute

import (
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

// Method computes accelerations for a view. The returned slice has one entry
// per view.Affected, in the same order.
type Method[S vec.Scalar, V vec.Vector[S, V]] interface {
	Name() string
	Compute(view storage.View[S, V]) []V
}

// Func adapts a plain function to Method.
type Func[S vec.Scalar, V vec.Vector[S, V]] struct {
	Label string
	Fn    func(storage.View[S, V]) []V
}

func (f Func[S, V]) Name() string { return f.Label }

func (f Func[S, V]) Compute(view storage.View[S, V]) []V { return f.Fn(view) }
