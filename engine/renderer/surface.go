package renderer

// PixelFormat describes the byte layout of one pixel in a read-back frame.
type PixelFormat int

const (
	// PixelFormatRGBA8 is four 8 bit channels in R, G, B, A order with straight (not premultiplied) alpha.
	PixelFormatRGBA8 PixelFormat = iota
)

// BytesPerPixel returns the size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	return 4
}

// String returns the conventional name of the format.
func (f PixelFormat) String() string {
	return "RGBA8"
}

// Origin names the corner the first row of a read-back frame starts at.
type Origin int

const (
	// OriginBottomLeft delivers the bottom row first, matching the GL read-back convention.
	// A consumer uploading the bytes straight into a GL texture sees an upright image.
	OriginBottomLeft Origin = iota

	// OriginTopLeft delivers the top row first, matching image file and window-system conventions.
	OriginTopLeft
)

// String returns a short name for the origin.
func (o Origin) String() string {
	if o == OriginTopLeft {
		return "top-left"
	}
	return "bottom-left"
}

// Surface is the read-back side of a renderer: a fixed-size image holding the most
// recently completed frame.
type Surface interface {
	// Width returns the surface width in pixels. It never changes.
	Width() int

	// Height returns the surface height in pixels. It never changes.
	Height() int

	// Format returns the pixel layout ReadPixels produces.
	Format() PixelFormat

	// Origin returns the row order ReadPixels produces.
	Origin() Origin

	// Ready reports whether at least one frame has completed.
	Ready() bool

	// ReadPixels copies the most recently completed frame into dst.
	// The surface keeps its contents, so reading twice without an intervening render
	// yields identical bytes.
	//
	// Parameters:
	//   - dst: exactly FrameSize(Width(), Height()) bytes
	//
	// Returns:
	//   - error: ErrDestinationSize, ErrNotReady, ErrClosed, or a backend read-back failure
	ReadPixels(dst []byte) error
}

// FrameSize returns the number of bytes in one RGBA8 frame.
func FrameSize(width, height int) int {
	return width * height * PixelFormatRGBA8.BytesPerPixel()
}

// FlipRows reverses the row order of an RGBA8 frame in place.
//
// Parameters:
//   - buf: a frame of at least FrameSize(width, height) bytes
//   - width: the frame width in pixels
//   - height: the frame height in pixels
func FlipRows(buf []byte, width, height int) {
	stride := width * PixelFormatRGBA8.BytesPerPixel()
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := buf[top*stride : (top+1)*stride]
		b := buf[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
