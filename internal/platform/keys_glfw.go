package platform

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Labels follow SDL key names so bindings read the same on every backend.
var keyLabels = map[glfw.Key]string{
	glfw.KeySpace:        "Space",
	glfw.KeyEscape:       "Escape",
	glfw.KeyEnter:        "Return",
	glfw.KeyTab:          "Tab",
	glfw.KeyBackspace:    "Backspace",
	glfw.KeyLeft:         "Left",
	glfw.KeyRight:        "Right",
	glfw.KeyUp:           "Up",
	glfw.KeyDown:         "Down",
	glfw.KeyLeftShift:    "Left Shift",
	glfw.KeyRightShift:   "Right Shift",
	glfw.KeyLeftControl:  "Left Ctrl",
	glfw.KeyRightControl: "Right Ctrl",
	glfw.KeyLeftAlt:      "Left Alt",
	glfw.KeyRightAlt:     "Right Alt",
	glfw.KeyF1:           "F1",
	glfw.KeyF11:          "F11",
	glfw.KeyF12:          "F12",
}

func keyLabel(key glfw.Key, scancode int) string {
	if label, ok := keyLabels[key]; ok {
		return label
	}
	// letters by key code, other printable keys by their layout name
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return string(rune('A' + (key - glfw.KeyA)))
	}
	if name := glfw.GetKeyName(key, scancode); name != "" {
		return strings.ToUpper(name)
	}
	return "Unknown"
}
