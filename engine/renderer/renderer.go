package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
)

var logger = log.New("renderer")

// DefaultWidth and DefaultHeight are the surface dimensions used when WithSize is not given.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Renderer draws frames into a fixed-size offscreen surface and exposes the most
// recently completed frame for read-back.
//
// Render and ReadPixels are serialized: a read never observes a half-drawn frame.
type Renderer interface {
	Surface

	// Backend returns the backend type in use.
	Backend() RendererBackendType

	// FrameCount returns the number of frames completed since creation.
	FrameCount() uint64

	// Render draws a frame into the surface, replacing its previous contents.
	// A failed render leaves the previously completed frame in place.
	//
	// Parameters:
	//   - frame: the frame to draw
	//
	// Returns:
	//   - error: ErrClosed, or a backend failure
	Render(frame *Frame) error

	// Close releases the backend. Further calls return ErrClosed.
	//
	// Returns:
	//   - error: always nil; present for io.Closer compatibility
	Close() error
}

type renderer struct {
	mu      sync.Mutex
	backend RendererBackend

	backendType          RendererBackendType
	width                int
	height               int
	origin               Origin
	msaa                 MSAASampleCount
	forceFallbackAdapter bool
	workers              int

	frames atomic.Uint64
	closed bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the requested backend.
//
// Parameters:
//   - backendType: BackendTypeSoftware or BackendTypeWGPU
//   - options: functional options
//
// Returns:
//   - Renderer: the ready renderer; ReadPixels fails with ErrNotReady until the first Render
//   - error: ErrInvalidSize, ErrUnsupportedBackend, ErrNoAdapter, or a backend setup failure
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		backendType: backendType,
		width:       DefaultWidth,
		height:      DefaultHeight,
		origin:      OriginBottomLeft,
		msaa:        MSAAOff,
		workers:     runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, r.width, r.height)
	}
	if r.workers < 1 {
		r.workers = 1
	}

	switch backendType {
	case BackendTypeSoftware:
		r.backend = newSoftwareRendererBackend(r.width, r.height, r.workers)
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(r.width, r.height, r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, err
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backendType)
	}

	logger.Infof("created %s renderer %dx%d origin=%s", backendType, r.width, r.height, r.origin)
	return r, nil
}

func (r *renderer) Width() int {
	return r.width
}

func (r *renderer) Height() int {
	return r.height
}

func (r *renderer) Format() PixelFormat {
	return PixelFormatRGBA8
}

func (r *renderer) Origin() Origin {
	return r.origin
}

func (r *renderer) Backend() RendererBackendType {
	return r.backendType
}

func (r *renderer) FrameCount() uint64 {
	return r.frames.Load()
}

func (r *renderer) Ready() bool {
	return r.frames.Load() > 0
}

func (r *renderer) Render(frame *Frame) error {
	if frame == nil {
		return fmt.Errorf("renderer: nil frame")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	if err := r.backend.BeginFrame(frame); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, cmd := range frame.Draws {
		if err := r.backend.DrawCall(cmd); err != nil {
			r.backend.AbortFrame()
			return fmt.Errorf("draw %q: %w", cmd.Name, err)
		}
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	n := r.frames.Add(1)
	if n == 1 {
		logger.Debugf("first frame complete (%d draws)", len(frame.Draws))
	}
	return nil
}

func (r *renderer) ReadPixels(dst []byte) error {
	if len(dst) != FrameSize(r.width, r.height) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDestinationSize, len(dst), FrameSize(r.width, r.height))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if r.frames.Load() == 0 {
		return ErrNotReady
	}

	if err := r.backend.ReadPixels(dst); err != nil {
		return err
	}
	if r.origin == OriginBottomLeft {
		FlipRows(dst, r.width, r.height)
	}
	return nil
}

func (r *renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.backend.Release()
	logger.Debugf("%s renderer closed after %d frames", r.backendType, r.frames.Load())
	return nil
}
