package platform

type Event interface{}

type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
// Mouse buttons as reported in ButtonPress and ButtonRelease.
const (
	ButtonLeft uint32 = iota
	ButtonRight
	ButtonMiddle
)

// Pointer positions are framebuffer pixels from the top-left corner.
type ButtonPress struct {
	Button uint32
	X, Y   int
}
type ButtonRelease struct {
	Button uint32
	X, Y   int
}
type MotionNotify struct {
	X, Y int
}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
	X, Y   int
}

// Resize carries the new framebuffer size in pixels.
type Resize struct {
	Width, Height int
}
type DestroyNotify struct{}
type UnexpectedEvent struct{}
type TimeoutEvent struct{}
