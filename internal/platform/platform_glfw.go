package platform

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindowWrapper struct {
	window *glfw.Window
	events []Event
	vsync  bool
}

// NewPlatformWindowWrapper initializes glfw and opens a hidden window with a
// current OpenGL 3.3 core context. The calling goroutine is locked to its
// thread until Close.
func NewPlatformWindowWrapper(conf WindowConfig) (PlatformWindowWrapper, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(conf.Resizable))

	var monitor *glfw.Monitor
	if conf.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindowWrapper{window: win, vsync: conf.VSync}
	win.SetKeyCallback(w.onKey)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetScrollCallback(w.onScroll)
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	win.SetCloseCallback(w.onClose)
	slog.Debug("platform: window created", "title", conf.Title, "width", conf.Width, "height", conf.Height, "vsync", conf.VSync)
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *glfwWindowWrapper) Show() {
	w.window.Show()
	// first frame so the compositor has real content
	w.window.SwapBuffers()
}

func (w *glfwWindowWrapper) Close() {
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}

func (w *glfwWindowWrapper) NextEventTimeout(timeoutMs int) Event {
	if len(w.events) == 0 {
		if timeoutMs <= 0 {
			glfw.PollEvents()
		} else {
			glfw.WaitEventsTimeout((time.Duration(timeoutMs) * time.Millisecond).Seconds())
		}
	}
	if len(w.events) == 0 {
		return TimeoutEvent{}
	}
	e := w.events[0]
	w.events = w.events[1:]
	return e
}

func (w *glfwWindowWrapper) BeginFrame() {}

func (w *glfwWindowWrapper) EndFrame() {
	w.window.SwapBuffers()
}

func (w *glfwWindowWrapper) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindowWrapper) ProcAddress() func(name string) unsafe.Pointer {
	return glfw.GetProcAddress
}

func (w *glfwWindowWrapper) push(e Event) {
	w.events = append(w.events, e)
}

func (w *glfwWindowWrapper) onKey(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
	label := keyLabel(key, scancode)
	switch action {
	case glfw.Press:
		w.push(KeyPress{Code: uint64(scancode), Label: label})
	case glfw.Release:
		w.push(KeyRelease{Code: uint64(scancode), Label: label})
	}
}

// cursorPixels converts a cursor position from screen coordinates to
// framebuffer pixels; they differ on high-density displays.
func cursorPixels(win *glfw.Window, x, y float64) (int, int) {
	ww, wh := win.GetSize()
	fw, fh := win.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return int(x), int(y)
}

func buttonCode(button glfw.MouseButton) uint32 {
	switch button {
	case glfw.MouseButtonLeft:
		return ButtonLeft
	case glfw.MouseButtonRight:
		return ButtonRight
	case glfw.MouseButtonMiddle:
		return ButtonMiddle
	default:
		return uint32(button)
	}
}

func (w *glfwWindowWrapper) onMouseButton(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	cx, cy := win.GetCursorPos()
	x, y := cursorPixels(win, cx, cy)
	switch action {
	case glfw.Press:
		w.push(ButtonPress{Button: buttonCode(button), X: x, Y: y})
	case glfw.Release:
		w.push(ButtonRelease{Button: buttonCode(button), X: x, Y: y})
	}
}

func (w *glfwWindowWrapper) onCursorPos(win *glfw.Window, x, y float64) {
	px, py := cursorPixels(win, x, y)
	w.push(MotionNotify{X: px, Y: py})
}

func (w *glfwWindowWrapper) onScroll(win *glfw.Window, dx, dy float64) {
	cx, cy := win.GetCursorPos()
	x, y := cursorPixels(win, cx, cy)
	w.push(MouseWheel{DeltaX: dx, DeltaY: dy, X: x, Y: y})
}

func (w *glfwWindowWrapper) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.push(Resize{Width: width, Height: height})
}

func (w *glfwWindowWrapper) onClose(_ *glfw.Window) {
	w.push(DestroyNotify{})
}
