package platform

import "unsafe"

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	VSync      bool
	Resizable  bool
	Fullscreen bool
}

// PlatformWindowWrapper is a native window that owns a current GL 3.3 core
// context. All methods must be called from the thread that created it.
type PlatformWindowWrapper interface {
	Show()
	Close()
	// NextEventTimeout waits up to timeoutMs for the next input event and
	// returns TimeoutEvent when none arrives.
	NextEventTimeout(timeoutMs int) Event
	BeginFrame()
	EndFrame()
	// FramebufferSize returns the drawable size in pixels, which differs from
	// the window size on high-DPI screens.
	FramebufferSize() (int, int)
	// ProcAddress is the GL loader entry for binding libraries.
	ProcAddress() func(name string) unsafe.Pointer
}
