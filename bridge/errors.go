package bridge

import "errors"

var (
	// ErrCapacity is returned when the destination is smaller than one frame.
	ErrCapacity = errors.New("bridge: destination capacity smaller than frame")

	// ErrOutOfBounds is returned when the destination range falls outside the shared memory.
	ErrOutOfBounds = errors.New("bridge: destination out of bounds")

	// ErrSurfaceNotReady is returned when no frame has been rendered yet.
	ErrSurfaceNotReady = errors.New("bridge: surface not ready")

	// ErrReadback wraps a failure of the surface read-back.
	ErrReadback = errors.New("bridge: surface read-back failed")

	// ErrBusy is returned when a transfer is already in flight.
	ErrBusy = errors.New("bridge: transfer already in progress")

	// ErrClosed is returned after the bridge or its memory has been closed.
	ErrClosed = errors.New("bridge: closed")

	// ErrOutOfMemory is returned when a heap allocation does not fit.
	ErrOutOfMemory = errors.New("bridge: out of memory")

	// ErrUnknownOp is returned by Registry.Call for unregistered names.
	ErrUnknownOp = errors.New("bridge: unknown op")

	// ErrDuplicateOp is returned by Registry.Register when the name is taken.
	ErrDuplicateOp = errors.New("bridge: duplicate op")

	// ErrArgCount is returned when a call passes the wrong number of arguments.
	ErrArgCount = errors.New("bridge: wrong argument count")

	// ErrArgType is returned when an argument cannot be converted to its declared kind.
	ErrArgType = errors.New("bridge: wrong argument type")
)
