// Package viz renders gravitational systems in the terminal.
//
// [Model] is a Bubble Tea program that integrates a system live and draws it
// on a braille [Canvas]. [Table] and [Chart] format batch results for the
// command line.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial system
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[ ]   - Time travel (rewind/forward)
//	x y z - Rotate the camera (shift reverses)
//	+ -   - Zoom
package viz
