package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/scene"
)

func testScene(active bool) scene.Scene {
	cam := camera.NewCamera(
		camera.WithAspect(4.0/3.0),
		camera.WithController(camera.NewArcRotateController(
			camera.WithTarget(0, 0, 0),
			camera.WithEye(0, 5, -10),
		)),
	)
	return scene.NewScene("test", cam, scene.WithActive(active))
}

func testRenderer(t *testing.T) renderer.Renderer {
	t.Helper()
	r, err := renderer.NewRenderer(renderer.BackendTypeSoftware, renderer.WithSize(16, 12), renderer.WithWorkers(1))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRenderFrame(t *testing.T) {
	tests := []struct {
		name    string
		options func(t *testing.T) []EngineBuilderOption
		wantErr error
	}{
		{
			name:    "no renderer",
			options: func(t *testing.T) []EngineBuilderOption { return []EngineBuilderOption{WithScene(0, testScene(true))} },
			wantErr: ErrNoRenderer,
		},
		{
			name: "no active scene",
			options: func(t *testing.T) []EngineBuilderOption {
				return []EngineBuilderOption{WithRenderer(testRenderer(t)), WithScene(0, testScene(false))}
			},
			wantErr: ErrNoActiveScene,
		},
		{
			name: "renders",
			options: func(t *testing.T) []EngineBuilderOption {
				return []EngineBuilderOption{WithRenderer(testRenderer(t)), WithScene(0, testScene(true))}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.options(t)...)
			err := e.RenderFrame()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenderFrame() = %v, want %v", err, tt.wantErr)
			}
			want := uint64(1)
			if tt.wantErr != nil {
				want = 0
			}
			if got := e.FrameCount(); got != want {
				t.Errorf("FrameCount() = %d, want %d", got, want)
			}
		})
	}
}

func TestActiveSceneLowestKey(t *testing.T) {
	back := testScene(true)
	front := testScene(false)

	e := NewEngine(WithRenderer(testRenderer(t)), WithScene(5, back), WithScene(1, front)).(*engine)
	if got := e.activeScene(); got != back {
		t.Fatal("expected the only active scene")
	}
	front.SetActive(true)
	if got := e.activeScene(); got != front {
		t.Fatal("expected the lowest active key to win")
	}
	e.RemoveScene(1)
	if e.Scene(1) != nil || len(e.Scenes()) != 1 {
		t.Error("RemoveScene(1) did not remove the scene")
	}
}

func TestWaitForFrame(t *testing.T) {
	t.Run("satisfied by RenderFrame", func(t *testing.T) {
		e := NewEngine(WithRenderer(testRenderer(t)), WithScene(0, testScene(true)), WithRenderLoop(false))
		done := make(chan error, 1)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			done <- e.WaitForFrame(ctx, 2)
		}()
		for i := 0; i < 2; i++ {
			if err := e.RenderFrame(); err != nil {
				t.Fatalf("RenderFrame: %v", err)
			}
		}
		if err := <-done; err != nil {
			t.Fatalf("WaitForFrame: %v", err)
		}
	})

	t.Run("already reached", func(t *testing.T) {
		e := NewEngine()
		if err := e.WaitForFrame(context.Background(), 0); err != nil {
			t.Fatalf("WaitForFrame(0) = %v", err)
		}
	})

	t.Run("context deadline", func(t *testing.T) {
		e := NewEngine(WithRenderLoop(false))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := e.WaitForFrame(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("WaitForFrame() = %v, want deadline exceeded", err)
		}
	})

	t.Run("quit", func(t *testing.T) {
		e := NewEngine(WithRenderLoop(false))
		e.Quit()
		e.Quit()
		if err := e.WaitForFrame(context.Background(), 1); !errors.Is(err, ErrStopped) {
			t.Fatalf("WaitForFrame() = %v, want ErrStopped", err)
		}
	})
}

func TestRunHeadless(t *testing.T) {
	var renders atomic.Int32
	ticked := make(chan struct{}, 1)
	e := NewEngine(
		WithRenderer(testRenderer(t)),
		WithScene(0, testScene(true)),
		WithTickRate(200),
		WithRenderFrameLimit(200),
		WithTickCallback(func(float32) {
			select {
			case ticked <- struct{}{}:
			default:
			}
		}),
	)
	e.SetRenderCallback(func(float32) { renders.Add(1) })

	finished := make(chan struct{})
	go func() {
		e.Run()
		close(finished)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.WaitForFrame(ctx, 3); err != nil {
		t.Fatalf("WaitForFrame: %v", err)
	}
	select {
	case <-ticked:
	case <-ctx.Done():
		t.Fatal("tick callback never ran")
	}

	e.Quit()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	if renders.Load() < 3 {
		t.Errorf("render callback ran %d times, want >= 3", renders.Load())
	}
	if e.FrameCount() < 3 {
		t.Errorf("FrameCount() = %d, want >= 3", e.FrameCount())
	}
}

func TestRenderLoopStopsWhenRendererCloses(t *testing.T) {
	r := testRenderer(t)
	e := NewEngine(WithRenderer(r), WithScene(0, testScene(true)), WithRenderFrameLimit(500))
	e.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.WaitForFrame(ctx, 1); err != nil {
		t.Fatalf("WaitForFrame: %v", err)
	}
	r.Close()

	select {
	case <-e.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not quit after the renderer closed")
	}
}

func TestSetTickRate(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(30)
	if got := e.tickRate(); got != time.Second/30 {
		t.Errorf("tick rate = %v, want %v", got, time.Second/30)
	}
	e.SetTickRate(0)
	if got := e.tickRate(); got != time.Second/60 {
		t.Errorf("tick rate = %v, want default", got)
	}
	e.SetRenderFrameLimit(100)
	if got := e.frameLimit(); got != 10*time.Millisecond {
		t.Errorf("frame limit = %v, want 10ms", got)
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	// No active scene: the render loop keeps reading the tick rate as its back-off.
	e := NewEngine(WithRenderer(testRenderer(t)), WithTickRate(500)).(*engine)
	e.Start()
	defer e.Quit()

	for i := 0; i < 50; i++ {
		e.SetTickRate(float64(100 + i))
		time.Sleep(time.Millisecond)
	}

	deadline := time.Now().Add(5 * time.Second)
	for e.tickRate() != time.Duration(float64(time.Second)/149) {
		if time.Now().After(deadline) {
			t.Fatalf("tick rate = %v, want the last requested rate", e.tickRate())
		}
		time.Sleep(time.Millisecond)
	}
}

// steppedClock hands each Wait to the test and blocks until released.
type steppedClock struct {
	waits   chan time.Duration
	release chan struct{}
}

func newSteppedClock() *steppedClock {
	return &steppedClock{waits: make(chan time.Duration), release: make(chan struct{})}
}

func (c *steppedClock) Wait(quit <-chan struct{}, remaining time.Duration) bool {
	select {
	case c.waits <- remaining:
	case <-quit:
		return false
	}
	select {
	case <-c.release:
		return true
	case <-quit:
		return false
	}
}

func TestRenderLoopWaitsBetweenFrames(t *testing.T) {
	tests := []struct {
		name       string
		fps        float64
		active     bool
		wantFrames bool
		overBudget bool
	}{
		{name: "uncapped", fps: 0, active: true, wantFrames: true, overBudget: true},
		{name: "frame exceeds limit", fps: 1e9, active: true, wantFrames: true, overBudget: true},
		{name: "nothing to draw", fps: 0, active: false, wantFrames: false, overBudget: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newSteppedClock()
			e := NewEngine(
				WithRenderer(testRenderer(t)),
				WithScene(0, testScene(tt.active)),
				WithRenderFrameLimit(tt.fps),
				WithFrameClock(clock),
			)
			e.Start()
			defer e.Quit()

			for i := uint64(1); i <= 3; i++ {
				var remaining time.Duration
				select {
				case remaining = <-clock.waits:
				case <-time.After(5 * time.Second):
					t.Fatalf("render loop never waited after frame %d", i)
				}

				// The loop is parked in Wait, so the count cannot move.
				want := uint64(0)
				if tt.wantFrames {
					want = i
				}
				if got := e.FrameCount(); got != want {
					t.Errorf("FrameCount() = %d while waiting, want %d", got, want)
				}
				if tt.overBudget && remaining > 0 {
					t.Errorf("remaining = %v, want <= 0 for an over-budget frame", remaining)
				}
				if !tt.overBudget && remaining <= 0 {
					t.Errorf("remaining = %v, want the tick-rate back-off", remaining)
				}

				clock.release <- struct{}{}
			}
		})
	}
}

func TestRenderLoopQuitsWhileWaiting(t *testing.T) {
	clock := newSteppedClock()
	e := NewEngine(WithRenderer(testRenderer(t)), WithScene(0, testScene(true)), WithFrameClock(clock))

	finished := make(chan struct{})
	go func() {
		e.Run()
		close(finished)
	}()

	select {
	case <-clock.waits:
	case <-time.After(5 * time.Second):
		t.Fatal("render loop never waited")
	}
	e.Quit()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestTimerClock(t *testing.T) {
	c := NewTimerClock()

	t.Run("over budget still sleeps", func(t *testing.T) {
		start := time.Now()
		if !c.Wait(make(chan struct{}), -time.Second) {
			t.Fatal("Wait returned false without quit")
		}
		if elapsed := time.Since(start); elapsed < MinFrameInterval {
			t.Errorf("Wait returned after %v, want >= %v", elapsed, MinFrameInterval)
		}
	})

	t.Run("quit interrupts", func(t *testing.T) {
		quit := make(chan struct{})
		close(quit)
		start := time.Now()
		if c.Wait(quit, time.Hour) {
			t.Error("Wait returned true after quit")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Wait took %v after quit", elapsed)
		}
	})
}
