//go:build !unix

package bridge

import "errors"

// MappedMemory is unavailable on this platform.
type MappedMemory struct {
	Heap
}

// OpenMappedMemory always fails on platforms without mmap.
func OpenMappedMemory(path string, size int) (*MappedMemory, error) {
	return nil, errors.New("bridge: mapped memory is not supported on this platform")
}

// Sync is a no-op.
func (m *MappedMemory) Sync() error { return nil }
