// Package gpu runs the brute-force acceleration kernel as a compute shader.
//
// [Resources] owns the device, the compiled pipeline and the buffers, and is
// meant to live across many calls: creating it is expensive, reusing it is
// not. Buffers are resized only when particle counts change.
//
// Two devices exist:
//
//   - opengl: go-gl on an OpenGL 4.3 context from a hidden raylib window.
//     Build with `-tags opengl,opengl43`. GL contexts are bound to one OS
//     thread, so all calls must come from the goroutine that created the
//     resources.
//   - software: executes the same shader semantics (workgroups, optional
//     shared-memory tiling, float32 arithmetic) on CPU goroutines. It is the
//     default without the opengl tag.
package gpu
