//go:build opengl

package gpu

import (
	"runtime"
	"strings"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"
)

// DefaultDevice opens a hidden window for its OpenGL 4.3 context.
func DefaultDevice() (Device, error) {
	return NewOpenGLDevice()
}

// OpenGLDevice owns a GL context bound to one locked OS thread. Every GL call
// is funnelled through that thread.
type OpenGLDevice struct {
	calls chan func()
	done  chan struct{}

	program       uint32
	workgroupSize int
	buffers       [numBuffers]uint32
	lengths       [numBuffers]int
}

func NewOpenGLDevice() (*OpenGLDevice, error) {
	d := &OpenGLDevice{
		calls: make(chan func()),
		done:  make(chan struct{}),
	}
	initErr := make(chan error, 1)
	go d.loop(initErr)
	if err := <-initErr; err != nil {
		return nil, err
	}
	return d, nil
}

func (d *OpenGLDevice) loop(initErr chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(1, 1, "gravsim")
	if !rl.IsWindowReady() {
		initErr <- errors.New("no window for OpenGL context")
		return
	}
	if err := gl.Init(); err != nil {
		rl.CloseWindow()
		initErr <- errors.Wrap(err, "init opengl")
		return
	}
	initErr <- nil

	for f := range d.calls {
		f()
	}
	rl.CloseWindow()
	close(d.done)
}

// do runs f on the GL thread and waits for it.
func (d *OpenGLDevice) do(f func()) {
	finished := make(chan struct{})
	d.calls <- func() {
		f()
		close(finished)
	}
	<-finished
}

func (d *OpenGLDevice) Name() string {
	var name string
	d.do(func() { name = "opengl " + gl.GoStr(gl.GetString(gl.RENDERER)) })
	return name
}

func (d *OpenGLDevice) CreatePipeline(strategy MemoryStrategy, workgroupSize int) error {
	var err error
	d.do(func() {
		var maxSize int32
		gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 0, &maxSize)
		if int32(workgroupSize) > maxSize {
			err = errors.Errorf("workgroup size %d exceeds device limit %d", workgroupSize, maxSize)
			return
		}
		d.program, err = createComputeProgram(Source(strategy, workgroupSize))
		if err != nil {
			return
		}
		d.workgroupSize = workgroupSize
		gl.GenBuffers(int32(numBuffers), &d.buffers[0])
	})
	return err
}

func elementSize(kind BufferKind) int {
	if kind == AffectedBuffer || kind == AffectingBuffer {
		return pointMassSize
	}
	return accelerationSize
}

func (d *OpenGLDevice) Resize(kind BufferKind, elements int) {
	d.do(func() {
		usage := uint32(gl.DYNAMIC_DRAW)
		if kind == StagingBuffer {
			usage = gl.DYNAMIC_READ
		}
		// zero-sized buffers are rejected by some drivers
		size := max(elements, 1) * elementSize(kind)
		gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, d.buffers[kind])
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, usage)
		d.lengths[kind] = elements
	})
}

func (d *OpenGLDevice) Upload(affected, affecting []PointMass) {
	d.do(func() {
		upload(d.buffers[AffectedBuffer], affected)
		upload(d.buffers[AffectingBuffer], affecting)
	})
}

func upload(buffer uint32, data []PointMass) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buffer)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(data)*pointMassSize, gl.Ptr(data))
}

type glFence struct {
	d    *OpenGLDevice
	sync uintptr
}

func (f glFence) Wait() {
	f.d.do(func() {
		for {
			status := gl.ClientWaitSync(f.sync, gl.SYNC_FLUSH_COMMANDS_BIT, 1_000_000_000)
			if status == gl.ALREADY_SIGNALED || status == gl.CONDITION_SATISFIED {
				break
			}
			if status == gl.WAIT_FAILED {
				logger.Printf("fence wait failed")
				break
			}
		}
		gl.DeleteSync(f.sync)
	})
}

func (d *OpenGLDevice) Submit(affectedLen, affectingLen int) Fence {
	var fence glFence
	d.do(func() {
		gl.UseProgram(d.program)
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, d.buffers[AffectedBuffer])
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, d.buffers[AffectingBuffer])
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 2, d.buffers[OutputBuffer])
		gl.Uniform1ui(gl.GetUniformLocation(d.program, gl.Str("affectedLen\x00")), uint32(affectedLen))
		gl.Uniform1ui(gl.GetUniformLocation(d.program, gl.Str("affectingLen\x00")), uint32(affectingLen))

		gl.DispatchCompute(uint32(workgroups(affectedLen, d.workgroupSize)), 1, 1)
		gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.BUFFER_UPDATE_BARRIER_BIT)

		gl.BindBuffer(gl.COPY_READ_BUFFER, d.buffers[OutputBuffer])
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, d.buffers[StagingBuffer])
		gl.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, 0, affectedLen*accelerationSize)

		fence = glFence{d: d, sync: gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)}
	})
	return fence
}

func (d *OpenGLDevice) Read(dst []Acceleration) {
	if len(dst) == 0 {
		return
	}
	d.do(func() {
		gl.BindBuffer(gl.COPY_READ_BUFFER, d.buffers[StagingBuffer])
		gl.GetBufferSubData(gl.COPY_READ_BUFFER, 0, len(dst)*accelerationSize, unsafe.Pointer(&dst[0]))
	})
}

func (d *OpenGLDevice) Release() {
	d.do(func() {
		gl.DeleteBuffers(int32(numBuffers), &d.buffers[0])
		if d.program != 0 {
			gl.DeleteProgram(d.program)
		}
	})
	close(d.calls)
	<-d.done
}

func createComputeProgram(source string) (uint32, error) {
	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)
	gl.DeleteShader(shader)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteProgram(program)
		return 0, errors.New("link compute program")
	}
	return program, nil
}
