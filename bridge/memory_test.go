package bridge

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestHeapAlloc(t *testing.T) {
	h := NewHeap(128)

	tests := []struct {
		name    string
		n       int
		want    int
		wantErr error
	}{
		{name: "first", n: 10, want: 16},
		{name: "aligned", n: 16, want: 32},
		{name: "rest", n: 80, want: 48},
		{name: "exhausted", n: 1, wantErr: ErrOutOfMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, err := h.Alloc(tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Alloc(%d) error = %v, want %v", tt.n, err, tt.wantErr)
			}
			if err == nil && off != tt.want {
				t.Errorf("Alloc(%d) = %d, want %d", tt.n, off, tt.want)
			}
		})
	}

	h.Reset()
	if off, err := h.Alloc(1); err != nil || off != HeapAlignment {
		t.Errorf("Alloc after Reset = %d, %v", off, err)
	}
	if _, err := h.Alloc(0); err == nil {
		t.Error("Alloc(0) should fail")
	}
}

func TestHeapBounds(t *testing.T) {
	h := NewHeap(64)

	if _, err := h.WriteAt(make([]byte, 8), 60); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteAt past end = %v, want ErrOutOfBounds", err)
	}
	if _, err := h.WriteAt([]byte{1}, -1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteAt(-1) = %v, want ErrOutOfBounds", err)
	}
	if n, err := h.WriteAt([]byte{1, 2, 3}, 61); err != nil || n != 3 {
		t.Errorf("WriteAt at tail = %d, %v", n, err)
	}

	got := make([]byte, 3)
	if _, err := h.ReadAt(got, 61); err != nil || got[0] != 1 || got[2] != 3 {
		t.Errorf("ReadAt = %v, %v", got, err)
	}
	if _, err := h.Bytes(60, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Bytes past end = %v", err)
	}

	h.Close()
	if _, err := h.WriteAt([]byte{1}, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteAt after Close = %v, want ErrClosed", err)
	}
}

func TestMappedMemory(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "js" || runtime.GOOS == "wasip1" {
		t.Skip("mmap not available")
	}
	path := filepath.Join(t.TempDir(), "frame.shm")

	m, err := OpenMappedMemory(path, 256)
	if err != nil {
		t.Fatalf("OpenMappedMemory: %v", err)
	}
	if m.Size() != 256 {
		t.Errorf("Size() = %d, want 256", m.Size())
	}
	if _, err := m.WriteAt([]byte("frame"), 100); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if err := m.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := m.WriteAt(make([]byte, 16), 250); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteAt past end = %v, want ErrOutOfBounds", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A second mapping of the same file sees the first one's writes.
	again, err := OpenMappedMemory(path, 256)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	got := make([]byte, 5)
	if _, err := again.ReadAt(got, 100); err != nil || string(got) != "frame" {
		t.Errorf("ReadAt = %q, %v", got, err)
	}
}
