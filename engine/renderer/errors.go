package renderer

import "errors"

var (
	// ErrNotReady is returned by ReadPixels before the first frame has been rendered.
	ErrNotReady = errors.New("renderer: no frame has been rendered yet")

	// ErrDestinationSize is returned by ReadPixels when the destination is not exactly one frame.
	ErrDestinationSize = errors.New("renderer: destination size does not match frame size")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("renderer: closed")

	// ErrNoAdapter is returned when no GPU adapter or device could be acquired.
	ErrNoAdapter = errors.New("renderer: no GPU adapter available")

	// ErrUnsupportedBackend is returned for a backend type that is not built into this binary.
	ErrUnsupportedBackend = errors.New("renderer: unsupported backend")

	// ErrInvalidSize is returned when the surface width or height is not positive.
	ErrInvalidSize = errors.New("renderer: surface dimensions must be positive")
)
