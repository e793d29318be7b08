// Package window runs the native window: it pumps input events, applies
// updates posted from other goroutines and renders frames at a fixed rate on
// the thread that owns the GL context.
package window

import (
	"context"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/kjkrol/mandelgl/internal/platform"
)

type Config struct {
	Width      int
	Height     int
	Title      string
	VSync      bool
	Resizable  bool
	Fullscreen bool
}

func (c Config) convert() platform.WindowConfig {
	return platform.WindowConfig{
		Width:      c.Width,
		Height:     c.Height,
		Title:      c.Title,
		VSync:      c.VSync,
		Resizable:  c.Resizable,
		Fullscreen: c.Fullscreen,
	}
}

type Window struct {
	platformWinWrapper platform.PlatformWindowWrapper
	renderer           Renderer
	refreshDelay       time.Duration
	clock              *frameClock
	width              int
	height             int
	wg                 sync.WaitGroup
	ctx                context.Context
	cancel             context.CancelFunc

	updates chan func()
}

const maxEventWait = 50 * time.Millisecond

// New opens the platform window and, when factory is non-nil, builds the
// renderer with the window's GL context current.
func New(conf Config, factory RendererFactory) (*Window, error) {
	wrapper, err := platform.NewPlatformWindowWrapper(conf.convert())
	if err != nil {
		return nil, err
	}
	w := newWindow(wrapper)
	if factory != nil {
		r, err := factory(w)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.renderer = r
	}
	return w, nil
}

func newWindow(wrapper platform.PlatformWindowWrapper) *Window {
	w := &Window{
		platformWinWrapper: wrapper,
		updates:            make(chan func(), 1024),
	}
	w.width, w.height = wrapper.FramebufferSize()
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w == nil {
		return 0, 0
	}
	return w.width, w.height
}

// Aspect returns width / height, or 1 for a degenerate framebuffer.
func (w *Window) Aspect() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

func (w *Window) Show() {
	w.platformWinWrapper.Show()
}

func (w *Window) RefreshRate(fps int) {
	if fps <= 0 {
		fps = 60
	}
	w.refreshDelay = time.Second / time.Duration(fps)
}

// FrameDelta returns the time between the frame being rendered and the one
// before it.
func (w *Window) FrameDelta() time.Duration {
	if w.clock == nil {
		return 0
	}
	return w.clock.delta
}

// Frames returns the number of frames rendered so far.
func (w *Window) Frames() uint64 {
	if w.clock == nil {
		return 0
	}
	return w.clock.frames
}

// ProcAddress exposes the platform GL loader.
func (w *Window) ProcAddress() func(name string) unsafe.Pointer {
	return w.platformWinWrapper.ProcAddress()
}

// Context is cancelled by Stop. Background work started with Go should
// return once it is done.
func (w *Window) Context() context.Context {
	return w.ctx
}

// Go runs fn in a goroutine that ListenEvents waits for before returning.
func (w *Window) Go(fn func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn(w.ctx)
	}()
}

// Post queues fn to run on the window thread before the next frame. It is
// safe to call from any goroutine and reports false once the window stopped.
func (w *Window) Post(fn func()) bool {
	select {
	case <-w.ctx.Done():
		return false
	default:
	}
	select {
	case w.updates <- fn:
		return true
	case <-w.ctx.Done():
		return false
	}
}

func (w *Window) Stop() {
	w.cancel()
}

func (w *Window) Close() {
	w.cancel()
	if w.renderer != nil {
		w.renderer.Close()
		w.renderer = nil
	}
	w.platformWinWrapper.Close()
}

func (w *Window) SetRenderer(renderer Renderer) {
	if w == nil {
		return
	}
	if w.renderer != nil {
		w.renderer.Close()
	}
	w.renderer = renderer
}

// ListenEvents runs the loop until Stop is called: handle input with
// strategy, then, when a frame is due, apply posted updates and render.
// Resize events update Size before handleEvent sees them.
func (w *Window) ListenEvents(handleEvent func(event Event), strategy EventsConsumerStrategy) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if strategy == nil {
		strategy = DrainAll()
	}
	if w.clock == nil {
		w.clock = newFrameClock(w.refreshDelay, nil)
	}
	poll := func(timeoutMs int) (Event, bool) {
		platformEvent := w.platformWinWrapper.NextEventTimeout(timeoutMs)
		if _, ok := platformEvent.(platform.TimeoutEvent); ok {
			return nil, false
		}
		return convert(platformEvent), true
	}
	handle := func(event Event) {
		if r, ok := event.(Resize); ok {
			w.width, w.height = r.Width, r.Height
		}
		if handleEvent != nil {
			handleEvent(event)
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			w.wg.Wait()
			return
		default:
		}

		timeout := w.clock.untilNext(maxEventWait)
		timeoutMs := int(timeout / time.Millisecond)
		if timeout > 0 && timeoutMs == 0 {
			timeoutMs = 1
		}
		strategy.Consume(poll, handle, timeoutMs)

		if w.ctx.Err() != nil || !w.clock.tick() {
			continue
		}
		w.drainUpdates()
		w.platformWinWrapper.BeginFrame()
		if w.renderer != nil {
			w.renderer.Render(w)
		}
		w.platformWinWrapper.EndFrame()
	}
}

func (w *Window) drainUpdates() {
	for {
		select {
		case upd := <-w.updates:
			upd()
		default:
			return
		}
	}
}
