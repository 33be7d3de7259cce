package gpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// State is the lifecycle of a Resources value. It only moves forward.
type State int

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// Resources holds a device with its compiled pipeline and buffers. The
// pipeline is created lazily on the first Compute. A Resources value must not
// be used from more than one goroutine at a time.
type Resources struct {
	strategy      MemoryStrategy
	workgroupSize int
	newDevice     func() (Device, error)

	device Device
	state  State
	sizes  [numBuffers]int

	resizes int
	output  []Acceleration
}

// NewResources uses the default device for this build.
func NewResources(strategy MemoryStrategy) *Resources {
	return NewResourcesWithDevice(strategy, DefaultWorkgroupSize, DefaultDevice)
}

func NewResourcesWithDevice(strategy MemoryStrategy, workgroupSize int, newDevice func() (Device, error)) *Resources {
	if workgroupSize <= 0 {
		panic(fmt.Sprintf("gpu: workgroup size must be positive, got %d", workgroupSize))
	}
	return &Resources{
		strategy:      strategy,
		workgroupSize: workgroupSize,
		newDevice:     newDevice,
	}
}

func (r *Resources) Strategy() MemoryStrategy { return r.strategy }

func (r *Resources) State() State { return r.state }

// Resizes counts buffer reallocations since creation.
func (r *Resources) Resizes() int { return r.resizes }

// BufferLen reports the element count a buffer is currently sized for.
func (r *Resources) BufferLen(kind BufferKind) int { return r.sizes[kind] }

func (r *Resources) DeviceName() string {
	if r.device == nil {
		return ""
	}
	return r.device.Name()
}

// init acquires the device and compiles the pipeline. There is no degraded
// mode, so failure panics.
func (r *Resources) init() {
	dev, err := r.newDevice()
	if err != nil {
		panic(errors.Wrap(err, "gpu: acquire device"))
	}
	if err := dev.CreatePipeline(r.strategy, r.workgroupSize); err != nil {
		dev.Release()
		panic(errors.Wrap(err, "gpu: create pipeline"))
	}
	r.device = dev
	r.state = Initialized
	logger.Printf("device %s ready, strategy=%s workgroup=%d", dev.Name(), r.strategy, r.workgroupSize)
}

func (r *Resources) ensure(kind BufferKind, elements int) {
	if r.sizes[kind] == elements {
		return
	}
	r.device.Resize(kind, elements)
	r.sizes[kind] = elements
	r.resizes++
}

// Compute returns the acceleration of every affected particle caused by the
// affecting ones. It blocks until the device has finished and the result has
// been read back.
func (r *Resources) Compute(affected, affecting []PointMass) []Acceleration {
	if len(affected) == 0 {
		return nil
	}
	if r.state == Uninitialized {
		r.init()
	}

	r.ensure(AffectedBuffer, len(affected))
	r.ensure(AffectingBuffer, len(affecting))
	r.ensure(OutputBuffer, len(affected))
	r.ensure(StagingBuffer, len(affected))

	r.device.Upload(affected, affecting)
	r.device.Submit(len(affected), len(affecting)).Wait()

	if cap(r.output) < len(affected) {
		r.output = make([]Acceleration, len(affected))
	}
	out := r.output[:len(affected)]
	r.device.Read(out)

	result := make([]Acceleration, len(out))
	copy(result, out)
	return result
}

// Release frees the device. The Resources value stays initialized and must
// not be used again.
func (r *Resources) Release() {
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}
