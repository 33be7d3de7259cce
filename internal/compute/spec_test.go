package compute

import (
	"testing"

	"github.com/san-kum/gravsim/internal/gpu"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in   string
		want Spec
	}{
		{"brute_force", DefaultSpec(KindBruteForce)},
		{"barnes_hut:0.7", Spec{Kind: KindBarnesHut, Theta: 0.7, Lanes: 4, Checked: true, Epsilon: DefaultEpsilon}},
		{"simd:8:unchecked", Spec{Kind: KindSIMD, Theta: DefaultTheta, Lanes: 8, Epsilon: DefaultEpsilon}},
		{"gpu:shared", Spec{Kind: KindGPU, Theta: DefaultTheta, Lanes: 4, Checked: true, Epsilon: DefaultEpsilon, Memory: gpu.Shared}},
		{"BRUTE_FORCE_SOFTENED:0.01", Spec{Kind: KindBruteForceSoftened, Theta: DefaultTheta, Lanes: 4, Checked: true, Epsilon: 0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ParseSpec(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	for _, in := range []string{"", "fast", "barnes_hut:x", "barnes_hut:-1", "simd:6", "gpu:texture", "brute_force:1"} {
		_, err := ParseSpec(in)
		assert.Error(t, err, in)
	}
}

func TestNewBuildsEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		m, err := New[float64, vec.Vec3](DefaultSpec(k))
		require.NoError(t, err, k)
		assert.NotEmpty(t, m.Name())
		assert.NotEmpty(t, k.Description())
		Release(m)
	}

	_, err := New[float64, vec.Vec4](DefaultSpec(KindGPU))
	assert.Error(t, err)

	m, err := New[float64, vec.Vec2](Spec{Kind: KindSIMD, Lanes: 8})
	require.NoError(t, err)
	assert.Equal(t, "simd8(unchecked)", m.Name())
}
