// Package bridge moves rendered frames across an execution boundary into memory owned by a host,
// and exposes named operations that host can call.
package bridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
)

var logger = log.New("bridge")

// Stats summarizes the transfers a bridge has performed.
type Stats struct {
	Transfers    uint64        // successful transfers
	Failures     uint64        // rejected or failed transfers
	Bytes        uint64        // bytes written into shared memory
	LastDuration time.Duration // duration of the last successful transfer
	LastAt       time.Time     // completion time of the last successful transfer
}

// Bridge copies the most recently completed frame of a surface into shared memory.
type Bridge interface {
	// Transfer reads back the full surface and writes it at location in shared memory.
	// Either the whole frame is written or nothing is.
	//
	// Parameters:
	//   - location: offset of the destination in shared memory
	//   - capacity: bytes the caller guarantees writable at location
	//
	// Returns:
	//   - error: ErrCapacity, ErrOutOfBounds, ErrSurfaceNotReady, ErrBusy, ErrReadback, or ErrClosed
	Transfer(location, capacity int) error

	// FrameSize returns the number of bytes one transfer writes.
	FrameSize() int

	// Surface returns the surface frames are read from.
	Surface() renderer.Surface

	// Memory returns the shared memory frames are written to.
	Memory() SharedMemory

	// Stats returns a snapshot of the transfer counters.
	Stats() Stats

	// Close stops accepting transfers. The surface and memory are not closed.
	Close() error
}

type bridge struct {
	surface renderer.Surface
	memory  SharedMemory

	flight sync.Mutex // held for the duration of one transfer

	mu     sync.Mutex
	stats  Stats
	closed bool

	logTransfers bool
	onTransfer   func(Stats)
}

var _ Bridge = &bridge{}

// NewBridge creates a bridge from surface into memory.
//
// Parameters:
//   - surface: the render surface to read back
//   - memory: the host-owned destination space
//   - options: functional options
//
// Returns:
//   - Bridge: the bridge
func NewBridge(surface renderer.Surface, memory SharedMemory, options ...BridgeBuilderOption) Bridge {
	b := &bridge{
		surface: surface,
		memory:  memory,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *bridge) FrameSize() int {
	return renderer.FrameSize(b.surface.Width(), b.surface.Height())
}

func (b *bridge) Surface() renderer.Surface {
	return b.surface
}

func (b *bridge) Memory() SharedMemory {
	return b.memory
}

func (b *bridge) Transfer(location, capacity int) error {
	err := b.transfer(location, capacity)
	if err != nil {
		b.mu.Lock()
		b.stats.Failures++
		b.mu.Unlock()
		logger.Debugf("transfer to %d (%d bytes) rejected: %v", location, capacity, err)
	}
	return err
}

func (b *bridge) transfer(location, capacity int) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}

	size := b.FrameSize()
	if capacity < size {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrCapacity, size, capacity)
	}
	if err := checkRange(location, size, b.memory.Size()); err != nil {
		return err
	}
	if !b.surface.Ready() {
		return ErrSurfaceNotReady
	}
	if !b.flight.TryLock() {
		return ErrBusy
	}
	defer b.flight.Unlock()

	start := time.Now()
	frame := make([]byte, size)
	if err := b.surface.ReadPixels(frame); err != nil {
		switch {
		case errors.Is(err, renderer.ErrNotReady):
			return ErrSurfaceNotReady
		case errors.Is(err, renderer.ErrClosed):
			return fmt.Errorf("%w: %w", ErrClosed, err)
		}
		return fmt.Errorf("%w: %w", ErrReadback, err)
	}
	if _, err := b.memory.WriteAt(frame, int64(location)); err != nil {
		return fmt.Errorf("write frame at %d: %w", location, err)
	}
	elapsed := time.Since(start)

	b.mu.Lock()
	b.stats.Transfers++
	b.stats.Bytes += uint64(size)
	b.stats.LastDuration = elapsed
	b.stats.LastAt = start.Add(elapsed)
	snapshot := b.stats
	b.mu.Unlock()

	if b.logTransfers {
		logger.Debugf("transferred %dx%d frame to %d in %v", b.surface.Width(), b.surface.Height(), location, elapsed)
	}
	if b.onTransfer != nil {
		b.onTransfer(snapshot)
	}
	return nil
}

func (b *bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
