package gpu

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDevice struct {
	*SoftwareDevice
	created int
	resized map[BufferKind]int
	submits int
}

func (c *countingDevice) CreatePipeline(strategy MemoryStrategy, wg int) error {
	c.created++
	return c.SoftwareDevice.CreatePipeline(strategy, wg)
}

func (c *countingDevice) Resize(kind BufferKind, n int) {
	c.resized[kind]++
	c.SoftwareDevice.Resize(kind, n)
}

func (c *countingDevice) Submit(a, b int) Fence {
	c.submits++
	return c.SoftwareDevice.Submit(a, b)
}

func newCounting(strategy MemoryStrategy, wg int) (*Resources, *countingDevice) {
	dev := &countingDevice{SoftwareDevice: NewSoftwareDevice(2), resized: map[BufferKind]int{}}
	r := NewResourcesWithDevice(strategy, wg, func() (Device, error) { return dev, nil })
	return r, dev
}

func randomMasses(rng *rand.Rand, n int) []PointMass {
	ps := make([]PointMass, n)
	for i := range ps {
		ps[i] = PointMass{
			Position: [3]float32{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10},
			Mass:     rng.Float32() * 5,
		}
	}
	return ps
}

func TestLazyInitialization(t *testing.T) {
	SetLogger(nil)
	r, dev := newCounting(Global, 8)
	assert.Equal(t, Uninitialized, r.State())
	assert.Equal(t, 0, dev.created)

	assert.Nil(t, r.Compute(nil, randomMasses(rand.New(rand.NewSource(1)), 3)))
	assert.Equal(t, Uninitialized, r.State())

	ps := randomMasses(rand.New(rand.NewSource(1)), 5)
	r.Compute(ps, ps)
	assert.Equal(t, Initialized, r.State())
	assert.Equal(t, "software", r.DeviceName())

	r.Compute(ps, ps)
	assert.Equal(t, 1, dev.created)
	assert.Equal(t, 2, dev.submits)
}

func TestResizeOnlyWhenCountsChange(t *testing.T) {
	SetLogger(nil)
	rng := rand.New(rand.NewSource(2))
	r, dev := newCounting(Shared, 4)

	a, b := randomMasses(rng, 10), randomMasses(rng, 7)
	r.Compute(a, b)
	assert.Equal(t, 4, r.Resizes())

	r.Compute(randomMasses(rng, 10), randomMasses(rng, 7))
	assert.Equal(t, 4, r.Resizes())

	r.Compute(randomMasses(rng, 10), randomMasses(rng, 9))
	assert.Equal(t, 5, r.Resizes())
	assert.Equal(t, 2, dev.resized[AffectingBuffer])
	assert.Equal(t, 1, dev.resized[AffectedBuffer])
	assert.Equal(t, 9, r.BufferLen(AffectingBuffer))

	r.Compute(randomMasses(rng, 3), randomMasses(rng, 9))
	assert.Equal(t, 8, r.Resizes())
	assert.Equal(t, 3, r.BufferLen(StagingBuffer))
}

func TestStrategiesMatchDirectSum(t *testing.T) {
	SetLogger(nil)
	rng := rand.New(rand.NewSource(3))
	affected, affecting := randomMasses(rng, 53), randomMasses(rng, 29)

	for _, strategy := range []MemoryStrategy{Global, Shared} {
		t.Run(strategy.String(), func(t *testing.T) {
			r := NewResourcesWithDevice(strategy, 16, func() (Device, error) { return NewSoftwareDevice(0), nil })
			defer r.Release()
			got := r.Compute(affected, affecting)
			require.Len(t, got, len(affected))
			for i, p := range affected {
				want := accelerationOver(p.Position, affecting)
				for j := 0; j < 3; j++ {
					assert.InDelta(t, want.Value[j], got[i].Value[j], 1e-3*(1+float64(abs32(want.Value[j]))))
				}
			}
		})
	}
}

func TestSharedWithEmptyAffecting(t *testing.T) {
	SetLogger(nil)
	r := NewResourcesWithDevice(Shared, 4, func() (Device, error) { return NewSoftwareDevice(1), nil })
	got := r.Compute(randomMasses(rand.New(rand.NewSource(4)), 6), nil)
	require.Len(t, got, 6)
	for _, a := range got {
		assert.Equal(t, Acceleration{}, a)
	}
}

func TestDeviceFailurePanics(t *testing.T) {
	SetLogger(nil)
	r := NewResourcesWithDevice(Global, 4, func() (Device, error) { return nil, errors.New("no adapter") })
	ps := randomMasses(rand.New(rand.NewSource(5)), 2)
	assert.PanicsWithError(t, "gpu: acquire device: no adapter", func() { r.Compute(ps, ps) })
}

func TestEncodeDecode(t *testing.T) {
	ps := []pointmass.PointMass[float64, vec.Vec2]{
		{Position: vec.Vec2{1, 2}, Mass: 3},
		{Position: vec.Vec2{-4, 0.5}, Mass: 0},
	}
	enc := Encode(ps, nil)
	assert.Equal(t, []PointMass{
		{Position: [3]float32{1, 2, 0}, Mass: 3},
		{Position: [3]float32{-4, 0.5, 0}, Mass: 0},
	}, enc)

	dec := Decode[float64, vec.Vec2]([]Acceleration{{Value: [3]float32{1.5, -2, 7}}})
	assert.Equal(t, []vec.Vec2{{1.5, -2}}, dec)

	assert.Panics(t, func() {
		Encode([]pointmass.PointMass[float64, vec.Vec4]{{Position: vec.Vec4{1, 2, 3, 4}, Mass: 1}}, nil)
	})
}

func TestShaderSource(t *testing.T) {
	global := Source(Global, 64)
	assert.Contains(t, global, "#version 430")
	assert.Contains(t, global, "local_size_x = 64")
	assert.NotContains(t, global, "shared PointMass")

	shared := Source(Shared, 128)
	assert.Contains(t, shared, "shared PointMass tile[128];")
	assert.Equal(t, 2, strings.Count(shared, "barrier();"))

	s, err := ParseMemoryStrategy("Tiled")
	require.NoError(t, err)
	assert.Equal(t, Shared, s)
	_, err = ParseMemoryStrategy("texture")
	assert.Error(t, err)

	assert.Equal(t, 0, workgroups(0, 256))
	assert.Equal(t, 1, workgroups(256, 256))
	assert.Equal(t, 2, workgroups(257, 256))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
