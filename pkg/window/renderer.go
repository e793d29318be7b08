package window

// Renderer draws one frame. Render runs on the window thread with the GL
// context current.
type Renderer interface {
	Render(w *Window)
	Close()
}

// RendererFactory builds the renderer once the window and its GL context
// exist.
type RendererFactory func(w *Window) (Renderer, error)
