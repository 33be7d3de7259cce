package compute

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/gpu"
	"github.com/san-kum/gravsim/internal/simd"
	"github.com/san-kum/gravsim/internal/vec"
)

type Kind string

const (
	KindBruteForce         Kind = "brute_force"
	KindBruteForceSoftened Kind = "brute_force_softened"
	KindBruteForcePairs    Kind = "brute_force_pairs"
	KindSIMD               Kind = "simd"
	KindBarnesHut          Kind = "barnes_hut"
	KindParallelBruteForce Kind = "parallel_brute_force"
	KindParallelSIMD       Kind = "parallel_simd"
	KindParallelBarnesHut  Kind = "parallel_barnes_hut"
	KindGPU                Kind = "gpu"
)

var kindInfo = map[Kind]string{
	KindBruteForce:         "exact, O(n*k)",
	KindBruteForceSoftened: "softened brute force, eps bounds close encounters",
	KindBruteForcePairs:    "exact, pairs evaluated once, self-interacting sets only",
	KindSIMD:               "exact, lane-batched inner loop (4 or 8 lanes)",
	KindBarnesHut:          "approximate O(n log n), accuracy grows as theta shrinks",
	KindParallelBruteForce: "brute_force across cores",
	KindParallelSIMD:       "simd across cores",
	KindParallelBarnesHut:  "barnes_hut across cores",
	KindGPU:                "brute force in a compute shader (global or shared memory)",
}

// Kinds lists every method kind in name order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindInfo))
	for k := range kindInfo {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (k Kind) Description() string { return kindInfo[k] }

// Spec selects and parameterizes a method. Fields that do not apply to Kind
// are ignored.
type Spec struct {
	Kind    Kind
	Theta   float64
	Lanes   int
	Checked bool
	Epsilon float64
	Memory  gpu.MemoryStrategy
	Workers int
}

const (
	DefaultTheta   = 0.5
	DefaultLanes   = 4
	DefaultEpsilon = 1e-3
)

// DefaultSpec fills in the usual parameters for a kind.
func DefaultSpec(kind Kind) Spec {
	return Spec{
		Kind:    kind,
		Theta:   DefaultTheta,
		Lanes:   DefaultLanes,
		Checked: true,
		Epsilon: DefaultEpsilon,
		Memory:  gpu.Global,
	}
}

// ParseSpec reads "kind[:param[:flag]]", for example "barnes_hut:0.7",
// "simd:8:unchecked", "gpu:shared" or "brute_force_softened:0.01".
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	kind := Kind(strings.ToLower(parts[0]))
	if _, ok := kindInfo[kind]; !ok {
		return Spec{}, errors.Errorf("unknown method %q", parts[0])
	}
	spec := DefaultSpec(kind)
	args := parts[1:]

	switch kind {
	case KindBarnesHut, KindParallelBarnesHut:
		if len(args) > 0 {
			theta, err := strconv.ParseFloat(args[0], 64)
			if err != nil || theta < 0 {
				return Spec{}, errors.Errorf("invalid theta %q", args[0])
			}
			spec.Theta = theta
			args = args[1:]
		}
	case KindBruteForceSoftened:
		if len(args) > 0 {
			eps, err := strconv.ParseFloat(args[0], 64)
			if err != nil || eps < 0 {
				return Spec{}, errors.Errorf("invalid epsilon %q", args[0])
			}
			spec.Epsilon = eps
			args = args[1:]
		}
	case KindSIMD, KindParallelSIMD:
		if len(args) > 0 {
			lanes, err := strconv.Atoi(args[0])
			if err != nil {
				return Spec{}, errors.Errorf("invalid lane width %q", args[0])
			}
			spec.Lanes = lanes
			args = args[1:]
		}
		if len(args) > 0 && args[0] == "unchecked" {
			spec.Checked = false
			args = args[1:]
		}
	case KindGPU:
		if len(args) > 0 {
			mem, err := gpu.ParseMemoryStrategy(args[0])
			if err != nil {
				return Spec{}, err
			}
			spec.Memory = mem
			args = args[1:]
		}
	}
	if len(args) > 0 {
		return Spec{}, errors.Errorf("unexpected arguments for %s: %s", kind, strings.Join(args, ":"))
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func (s Spec) Validate() error {
	if _, ok := kindInfo[s.Kind]; !ok {
		return errors.Errorf("unknown method %q", s.Kind)
	}
	switch s.Kind {
	case KindSIMD, KindParallelSIMD:
		if s.Lanes != 4 && s.Lanes != 8 {
			return errors.Errorf("lane width must be 4 or 8, got %d", s.Lanes)
		}
	case KindBarnesHut, KindParallelBarnesHut:
		if s.Theta < 0 {
			return errors.Errorf("theta must be non-negative, got %g", s.Theta)
		}
	}
	if s.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", s.Workers)
	}
	return nil
}

// String is the inverse of ParseSpec.
func (s Spec) String() string {
	switch s.Kind {
	case KindBarnesHut, KindParallelBarnesHut:
		return fmt.Sprintf("%s:%g", s.Kind, s.Theta)
	case KindBruteForceSoftened:
		return fmt.Sprintf("%s:%g", s.Kind, s.Epsilon)
	case KindSIMD, KindParallelSIMD:
		if !s.Checked {
			return fmt.Sprintf("%s:%d:unchecked", s.Kind, s.Lanes)
		}
		return fmt.Sprintf("%s:%d", s.Kind, s.Lanes)
	case KindGPU:
		return fmt.Sprintf("%s:%s", s.Kind, s.Memory)
	}
	return string(s.Kind)
}

// New builds the method described by spec.
func New[S vec.Scalar, V vec.Vector[S, V]](spec Spec) (Method[S, V], error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Kind {
	case KindBruteForce:
		return BruteForce[S, V]{}, nil
	case KindBruteForceSoftened:
		return BruteForceSoftened[S, V]{Epsilon: S(spec.Epsilon)}, nil
	case KindBruteForcePairs:
		return BruteForcePairs[S, V]{}, nil
	case KindSIMD:
		if spec.Lanes == 8 {
			return SIMD[simd.F64x8, S, V]{Checked: spec.Checked}, nil
		}
		return SIMD[simd.F64x4, S, V]{Checked: spec.Checked}, nil
	case KindParallelSIMD:
		if spec.Lanes == 8 {
			return ParallelSIMD[simd.F64x8, S, V]{Checked: spec.Checked, Workers: spec.Workers}, nil
		}
		return ParallelSIMD[simd.F64x4, S, V]{Checked: spec.Checked, Workers: spec.Workers}, nil
	case KindBarnesHut:
		return BarnesHut[S, V]{Theta: S(spec.Theta)}, nil
	case KindParallelBruteForce:
		return ParallelBruteForce[S, V]{Workers: spec.Workers}, nil
	case KindParallelBarnesHut:
		return ParallelBarnesHut[S, V]{Theta: S(spec.Theta), Workers: spec.Workers}, nil
	case KindGPU:
		if vec.Dim[S, V]() > gpu.MaxDim {
			return nil, errors.Errorf("gpu supports at most %d dimensions", gpu.MaxDim)
		}
		return NewGPU[S, V](spec.Memory), nil
	}
	return nil, errors.Errorf("unknown method %q", spec.Kind)
}

// Release frees resources held by m, if any.
func Release[S vec.Scalar, V vec.Vector[S, V]](m Method[S, V]) {
	if r, ok := m.(interface{ Release() }); ok {
		r.Release()
	}
}
