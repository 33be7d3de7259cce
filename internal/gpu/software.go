package gpu

import (
	"math"
	"runtime"

	"github.com/unixpickle/essentials"
)

// SoftwareDevice executes the acceleration shader on the CPU with the same
// dispatch geometry and float32 arithmetic as the GLSL version.
type SoftwareDevice struct {
	workers       int
	strategy      MemoryStrategy
	workgroupSize int

	buffers struct {
		affected  []PointMass
		affecting []PointMass
		output    []Acceleration
		staging   []Acceleration
	}
}

// NewSoftwareDevice runs workgroups on up to workers goroutines; 0 means
// GOMAXPROCS.
func NewSoftwareDevice(workers int) *SoftwareDevice {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &SoftwareDevice{workers: workers}
}

func (d *SoftwareDevice) Name() string { return "software" }

func (d *SoftwareDevice) CreatePipeline(strategy MemoryStrategy, workgroupSize int) error {
	d.strategy = strategy
	d.workgroupSize = workgroupSize
	return nil
}

func (d *SoftwareDevice) Resize(kind BufferKind, elements int) {
	switch kind {
	case AffectedBuffer:
		d.buffers.affected = make([]PointMass, elements)
	case AffectingBuffer:
		d.buffers.affecting = make([]PointMass, elements)
	case OutputBuffer:
		d.buffers.output = make([]Acceleration, elements)
	case StagingBuffer:
		d.buffers.staging = make([]Acceleration, elements)
	}
}

func (d *SoftwareDevice) Upload(affected, affecting []PointMass) {
	copy(d.buffers.affected, affected)
	copy(d.buffers.affecting, affecting)
}

type chanFence chan struct{}

func (f chanFence) Wait() { <-f }

func (d *SoftwareDevice) Submit(affectedLen, affectingLen int) Fence {
	done := make(chanFence)
	go func() {
		defer close(done)
		groups := workgroups(affectedLen, d.workgroupSize)
		essentials.ConcurrentMap(d.workers, groups, func(g int) {
			d.runWorkgroup(g, affectedLen, affectingLen)
		})
		copy(d.buffers.staging, d.buffers.output[:affectedLen])
	}()
	return done
}

func (d *SoftwareDevice) runWorkgroup(group, affectedLen, affectingLen int) {
	start := group * d.workgroupSize
	end := min(start+d.workgroupSize, affectedLen)
	affecting := d.buffers.affecting[:affectingLen]

	if d.strategy != Shared {
		for i := start; i < end; i++ {
			d.buffers.output[i] = accelerationOver(d.buffers.affected[i].Position, affecting)
		}
		return
	}

	acc := make([][3]float32, end-start)
	tile := make([]PointMass, d.workgroupSize)
	for base := 0; base < affectingLen; base += d.workgroupSize {
		n := copy(tile, affecting[base:])
		for i := start; i < end; i++ {
			p := d.buffers.affected[i].Position
			for _, other := range tile[:n] {
				acc[i-start] = add3(acc[i-start], accelerationFrom(p, other))
			}
		}
	}
	for i := start; i < end; i++ {
		d.buffers.output[i] = Acceleration{Value: acc[i-start]}
	}
}

func (d *SoftwareDevice) Read(dst []Acceleration) {
	copy(dst, d.buffers.staging)
}

func (d *SoftwareDevice) Release() {
	d.buffers.affected = nil
	d.buffers.affecting = nil
	d.buffers.output = nil
	d.buffers.staging = nil
}

func accelerationOver(p [3]float32, affecting []PointMass) Acceleration {
	var acc [3]float32
	for _, other := range affecting {
		acc = add3(acc, accelerationFrom(p, other))
	}
	return Acceleration{Value: acc}
}

func accelerationFrom(p [3]float32, other PointMass) [3]float32 {
	dir := [3]float32{
		other.Position[0] - p[0],
		other.Position[1] - p[1],
		other.Position[2] - p[2],
	}
	mag2 := dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]
	if mag2 == 0 {
		return [3]float32{}
	}
	f := other.Mass / (mag2 * float32(math.Sqrt(float64(mag2))))
	return [3]float32{dir[0] * f, dir[1] * f, dir[2] * f}
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
