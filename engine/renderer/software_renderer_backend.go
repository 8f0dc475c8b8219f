package renderer

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/gogpu/gg"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
)

// nearW rejects triangles with a vertex on or behind the eye plane.
const nearW = 1e-4

// seamDilation grows each screen triangle outward so anti-aliased edges of
// neighboring triangles overlap instead of letting the clear color bleed through.
const seamDilation = 0.5

var ggLoggerOnce sync.Once

type screenTriangle struct {
	pts   [3][2]float64
	depth float32
	color common.Color4
}

// canvas is one pixmap with the gg context that draws into it.
type canvas struct {
	pixmap *gg.Pixmap
	dc     *gg.Context
}

func newCanvas(width, height int) *canvas {
	pm := gg.NewPixmap(width, height)
	return &canvas{pixmap: pm, dc: gg.NewContextForPixmap(pm)}
}

type softwareRendererBackendImpl struct {
	width  int
	height int

	// Frames are drawn into back and swapped to front only when EndFrame succeeds,
	// so front always holds the last completed frame.
	back  *canvas
	front *canvas

	pool   worker.DynamicWorkerPool
	wg     sync.WaitGroup
	taskID int

	// Per-frame state, valid between BeginFrame and EndFrame.
	frame   *Frame
	batches [][]screenTriangle
	errs    []error
	next    int
}

var _ RendererBackend = &softwareRendererBackendImpl{}

// newSoftwareRendererBackend creates a CPU backend drawing into a gg pixmap.
// Vertex transform and shading run on a worker pool, one task per draw call;
// the raster pass is serial.
func newSoftwareRendererBackend(width, height, workers int) RendererBackend {
	ggLoggerOnce.Do(func() {
		gg.SetLogger(log.Slog("gg"))
	})

	return &softwareRendererBackendImpl{
		width:  width,
		height: height,
		back:   newCanvas(width, height),
		front:  newCanvas(width, height),
		pool:   worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

func (b *softwareRendererBackendImpl) BeginFrame(frame *Frame) error {
	b.clear(frame.ClearColor)
	b.frame = frame
	b.batches = make([][]screenTriangle, len(frame.Draws))
	b.errs = make([]error, len(frame.Draws))
	b.next = 0
	return nil
}

func (b *softwareRendererBackendImpl) DrawCall(cmd DrawCommand) error {
	if cmd.Model == nil {
		return fmt.Errorf("draw command %q has no model", cmd.Name)
	}
	if b.next >= len(b.batches) {
		return fmt.Errorf("draw command %q outside the current frame", cmd.Name)
	}

	idx := b.next
	b.next++
	frame := b.frame
	b.wg.Add(1)
	b.taskID++
	b.pool.SubmitTask(worker.Task{
		ID: b.taskID,
		Do: func() (any, error) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.errs[idx] = fmt.Errorf("shading %q panicked: %v", cmd.Name, r)
				}
			}()
			b.batches[idx] = projectDraw(frame, cmd, b.width, b.height)
			return nil, nil
		},
	})
	return nil
}

func (b *softwareRendererBackendImpl) EndFrame() error {
	b.wg.Wait()
	defer b.resetFrame()

	for _, err := range b.errs {
		if err != nil {
			return err
		}
	}

	dc := b.back.dc
	for _, batch := range b.batches {
		for i := range batch {
			tri := &batch[i]
			dc.SetRGBA(float64(tri.color.R), float64(tri.color.G), float64(tri.color.B), float64(tri.color.A))
			dc.MoveTo(tri.pts[0][0], tri.pts[0][1])
			dc.LineTo(tri.pts[1][0], tri.pts[1][1])
			dc.LineTo(tri.pts[2][0], tri.pts[2][1])
			dc.ClosePath()
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("fill: %w", err)
			}
		}
	}

	b.back, b.front = b.front, b.back
	return nil
}

// AbortFrame waits for in-flight shading and drops the frame. front is untouched.
func (b *softwareRendererBackendImpl) AbortFrame() {
	b.wg.Wait()
	b.resetFrame()
}

func (b *softwareRendererBackendImpl) resetFrame() {
	b.frame = nil
	b.batches = nil
	b.errs = nil
	b.next = 0
}

// ReadPixels converts the premultiplied front pixmap into straight alpha.
func (b *softwareRendererBackendImpl) ReadPixels(dst []byte) error {
	src := b.front.pixmap.Data()
	if len(dst) != len(src) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDestinationSize, len(dst), len(src))
	}
	for i := 0; i < len(src); i += 4 {
		a := src[i+3]
		switch a {
		case 255:
			copy(dst[i:i+4], src[i:i+4])
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			dst[i] = unpremultiply(src[i], a)
			dst[i+1] = unpremultiply(src[i+1], a)
			dst[i+2] = unpremultiply(src[i+2], a)
			dst[i+3] = a
		}
	}
	return nil
}

func (b *softwareRendererBackendImpl) Release() {
	b.pool.Stop()
	for _, c := range []*canvas{b.back, b.front} {
		if err := c.dc.Close(); err != nil {
			logger.Warningf("closing software context: %v", err)
		}
	}
}

// clear fills the back pixmap with c rounded to the nearest byte. Pixmap.Clear truncates,
// which would turn a 0.3 channel into 76 instead of 77.
func (b *softwareRendererBackendImpl) clear(c common.Color4) {
	px := [4]byte{
		common.ToByte(c.R * c.A),
		common.ToByte(c.G * c.A),
		common.ToByte(c.B * c.A),
		common.ToByte(c.A),
	}
	data := b.back.pixmap.Data()
	for i := 0; i < len(data); i += 4 {
		copy(data[i:i+4], px[:])
	}
	b.back.pixmap.NotifyPixelsChanged()
}

func unpremultiply(c, a byte) byte {
	v := (int(c)*255 + int(a)/2) / int(a)
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// projectDraw transforms, culls and flat-shades one draw command, returning its
// screen-space triangles ordered far to near.
func projectDraw(frame *Frame, cmd DrawCommand, width, height int) []screenTriangle {
	m := cmd.ModelMatrix[:]
	positions := cmd.Model.Positions()
	normals := cmd.Model.Normals()
	indices := cmd.Model.Indices()

	world := make([][3]float32, len(positions))
	clip := make([][4]float32, len(positions))
	worldNormals := make([][3]float32, len(positions))
	for i, p := range positions {
		w := common.TransformPoint(m, p)
		world[i] = [3]float32{w[0], w[1], w[2]}
		clip[i] = common.TransformPoint(frame.ViewProj[:], world[i])
		if i < len(normals) {
			worldNormals[i] = common.TransformNormal(m, normals[i])
		}
	}

	out := make([]screenTriangle, 0, len(indices)/3)
	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		if int(ia) >= len(world) || int(ib) >= len(world) || int(ic) >= len(world) {
			continue
		}
		ca, cb, cc := clip[ia], clip[ib], clip[ic]
		if ca[3] <= nearW || cb[3] <= nearW || cc[3] <= nearW {
			continue
		}
		if ca[2] < 0 || cb[2] < 0 || cc[2] < 0 {
			continue
		}

		var pts [3][2]float64
		for k, c := range [3][4]float32{ca, cb, cc} {
			pts[k][0] = (float64(c[0]/c[3])*0.5 + 0.5) * float64(width)
			pts[k][1] = (0.5 - float64(c[1]/c[3])*0.5) * float64(height)
		}
		area := (pts[1][0]-pts[0][0])*(pts[2][1]-pts[0][1]) - (pts[2][0]-pts[0][0])*(pts[1][1]-pts[0][1])
		if math.Abs(area) < 1e-9 {
			continue
		}

		centroid := common.Scale3(common.Add3(common.Add3(world[ia], world[ib]), world[ic]), 1.0/3.0)
		normal := common.Normalize3(common.Add3(common.Add3(worldNormals[ia], worldNormals[ib]), worldNormals[ic]))
		if common.Length3(normal) == 0 {
			normal = common.Normalize3(common.Cross3(common.Sub3(world[ib], world[ia]), common.Sub3(world[ic], world[ia])))
		}
		toEye := common.Sub3(frame.Eye, centroid)
		if common.Dot3(normal, toEye) <= 0 {
			if cmd.Material.BackFaceCulling {
				continue
			}
			normal = common.Scale3(normal, -1)
		}

		out = append(out, screenTriangle{
			pts:   dilate(pts, seamDilation),
			depth: common.Length3(toEye),
			color: light.Shade(frame.Lights, centroid, normal, frame.Eye, cmd.Material, frame.Ambient),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

// dilate moves every vertex away from the centroid by d pixels.
func dilate(pts [3][2]float64, d float64) [3][2]float64 {
	cx := (pts[0][0] + pts[1][0] + pts[2][0]) / 3
	cy := (pts[0][1] + pts[1][1] + pts[2][1]) / 3
	for i := range pts {
		dx, dy := pts[i][0]-cx, pts[i][1]-cy
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		s := (l + d) / l
		pts[i][0] = cx + dx*s
		pts[i][1] = cy + dy*s
	}
	return pts
}
