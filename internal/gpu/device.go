package gpu

import (
	"io"
	"log"
	"os"
)

// BufferKind names the four buffers a pipeline uses.
type BufferKind int

const (
	AffectedBuffer BufferKind = iota
	AffectingBuffer
	OutputBuffer
	StagingBuffer
	numBuffers
)

func (b BufferKind) String() string {
	return [...]string{"affected", "affecting", "output", "staging"}[b]
}

// Fence completes once submitted work has finished on the device.
type Fence interface {
	Wait()
}

// Device is a compute backend able to run the acceleration shader.
type Device interface {
	Name() string
	CreatePipeline(strategy MemoryStrategy, workgroupSize int) error
	// Resize reallocates a buffer to hold exactly elements entries.
	Resize(kind BufferKind, elements int)
	Upload(affected, affecting []PointMass)
	// Submit dispatches the pipeline and copies the output into the staging
	// buffer. It returns without waiting for the device.
	Submit(affectedLen, affectingLen int) Fence
	// Read copies the staging buffer into dst. Only valid after the fence.
	Read(dst []Acceleration)
	Release()
}

var logger = log.New(os.Stderr, "gpu: ", log.LstdFlags)

// SetLogger replaces the package logger; nil silences it.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}
