package compute

import (
	"github.com/san-kum/gravsim/internal/gpu"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

// GPU evaluates brute force in a compute shader. Resources is long lived and
// must not be shared between concurrent callers. Positions are narrowed to
// float32 and at most three dimensions are supported.
type GPU[S vec.Scalar, V vec.Vector[S, V]] struct {
	Resources *gpu.Resources

	affected, affecting []gpu.PointMass
}

func NewGPU[S vec.Scalar, V vec.Vector[S, V]](strategy gpu.MemoryStrategy) *GPU[S, V] {
	return &GPU[S, V]{Resources: gpu.NewResources(strategy)}
}

func (m *GPU[S, V]) Name() string { return "gpu(" + m.Resources.Strategy().String() + ")" }

func (m *GPU[S, V]) Compute(view storage.View[S, V]) []V {
	m.affected = gpu.Encode(view.Affected, m.affected)
	m.affecting = gpu.Encode(view.Affecting, m.affecting)
	return gpu.Decode[S, V](m.Resources.Compute(m.affected, m.affecting))
}

func (m *GPU[S, V]) Release() { m.Resources.Release() }
