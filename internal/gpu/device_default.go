//go:build !opengl

package gpu

// DefaultDevice returns the software device; build with the opengl tag for
// real hardware.
func DefaultDevice() (Device, error) {
	return NewSoftwareDevice(0), nil
}
