//go:build unix

package bridge

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// MappedMemory is a file-backed region mapped MAP_SHARED, so another process
// mapping the same file sees every transfer.
type MappedMemory struct {
	mu   sync.RWMutex
	file *os.File
	data []byte
}

var _ SharedMemory = (*MappedMemory)(nil)

// OpenMappedMemory maps size bytes of the file at path, creating and growing it as needed.
//
// Parameters:
//   - path: backing file, e.g. under /dev/shm
//   - size: number of bytes to map
//
// Returns:
//   - *MappedMemory: the mapping
//   - error: if the file cannot be opened, sized or mapped
func OpenMappedMemory(path string, size int) (*MappedMemory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bridge: invalid mapping size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("bridge: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bridge: stat %s: %w", path, err)
	}
	if info.Size() < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("bridge: grow %s: %w", path, err)
		}
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bridge: mmap %s: %w", path, err)
	}
	logger.Debugf("mapped %d bytes of %s", size, path)
	return &MappedMemory{file: f, data: data}, nil
}

// Size returns the mapped length.
func (m *MappedMemory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// ReadAt copies len(p) bytes starting at off into p.
func (m *MappedMemory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return 0, ErrClosed
	}
	if err := checkRange64(off, len(p), len(m.data)); err != nil {
		return 0, err
	}
	return copy(p, m.data[off:]), nil
}

// WriteAt copies p into the mapping at off. Nothing is written unless all of p fits.
func (m *MappedMemory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return 0, ErrClosed
	}
	if err := checkRange64(off, len(p), len(m.data)); err != nil {
		return 0, err
	}
	return copy(m.data[off:], p), nil
}

// Sync flushes the mapping to the backing file.
func (m *MappedMemory) Sync() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return ErrClosed
	}
	return unix.Msync(m.data, unix.MS_SYNC)
}

// Close unmaps the region and closes the backing file. The file itself is kept.
func (m *MappedMemory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
