package bridge

import (
	"fmt"
	"io"
	"sync"
)

// SharedMemory is a flat byte-addressable region owned by the host.
// Offsets are absolute positions in the region.
type SharedMemory interface {
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Size returns the number of addressable bytes.
	Size() int
}

// HeapAlignment is the alignment of every Heap allocation.
const HeapAlignment = 16

// DefaultHeapSize is the size of a heap created without an explicit size.
const DefaultHeapSize = 16 << 20

// Heap is an in-process flat address space with a bump allocator.
// Allocations are never freed individually; Reset releases them all.
// Offset 0 is reserved so a zero location never names a live allocation.
type Heap struct {
	mu     sync.RWMutex
	data   []byte
	next   int
	closed bool
}

var _ SharedMemory = (*Heap)(nil)

// NewHeap creates a heap of the given size in bytes. Sizes <= 0 use DefaultHeapSize.
//
// Parameters:
//   - size: capacity in bytes
//
// Returns:
//   - *Heap: the heap
func NewHeap(size int) *Heap {
	if size <= 0 {
		size = DefaultHeapSize
	}
	return &Heap{data: make([]byte, size), next: HeapAlignment}
}

// Size returns the heap capacity in bytes.
func (h *Heap) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.data)
}

// Alloc reserves n bytes and returns their offset.
//
// Parameters:
//   - n: number of bytes, must be > 0
//
// Returns:
//   - int: offset of the allocation, aligned to HeapAlignment
//   - error: ErrOutOfMemory if the heap is exhausted, ErrClosed after Close
func (h *Heap) Alloc(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("bridge: invalid allocation size %d", n)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, ErrClosed
	}
	off := h.next
	if n > len(h.data)-off {
		return 0, fmt.Errorf("%w: %d bytes requested, %d free", ErrOutOfMemory, n, len(h.data)-off)
	}
	h.next = alignUp(off+n, HeapAlignment)
	return off, nil
}

// Reset discards every allocation.
func (h *Heap) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = HeapAlignment
}

// Bytes returns a view of n bytes at off. The view aliases the heap.
//
// Parameters:
//   - off: start offset
//   - n: length
//
// Returns:
//   - []byte: the view
//   - error: ErrOutOfBounds if the range is outside the heap, ErrClosed after Close
func (h *Heap) Bytes(off, n int) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil, ErrClosed
	}
	if err := checkRange(off, n, len(h.data)); err != nil {
		return nil, err
	}
	return h.data[off : off+n : off+n], nil
}

// ReadAt copies len(p) bytes starting at off into p.
func (h *Heap) ReadAt(p []byte, off int64) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return 0, ErrClosed
	}
	if err := checkRange64(off, len(p), len(h.data)); err != nil {
		return 0, err
	}
	return copy(p, h.data[off:]), nil
}

// WriteAt copies p into the heap at off. Nothing is written unless all of p fits.
func (h *Heap) WriteAt(p []byte, off int64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, ErrClosed
	}
	if err := checkRange64(off, len(p), len(h.data)); err != nil {
		return 0, err
	}
	return copy(h.data[off:], p), nil
}

// Close releases the heap. Further access returns ErrClosed.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.data = nil
	return nil
}

func checkRange(off, n, size int) error {
	if off < 0 || n < 0 || off > size || n > size-off {
		return fmt.Errorf("%w: [%d, %d+%d) outside %d bytes", ErrOutOfBounds, off, off, n, size)
	}
	return nil
}

func checkRange64(off int64, n, size int) error {
	if off < 0 || off > int64(size) {
		return fmt.Errorf("%w: offset %d outside %d bytes", ErrOutOfBounds, off, size)
	}
	return checkRange(int(off), n, size)
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}
