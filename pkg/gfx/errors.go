package gfx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIO           = errors.New("gfx: read failed")
	ErrCompile      = errors.New("gfx: shader compilation failed")
	ErrLink         = errors.New("gfx: program linking failed")
	ErrDecode       = errors.New("gfx: image decoding failed")
	ErrAllocation   = errors.New("gfx: object allocation failed")
	ErrMissingField = errors.New("gfx: missing required field")
	ErrReleased     = errors.New("gfx: object already released")
	ErrNotImage     = errors.New("not a recognised image file")
)

// CompileError reports a shader stage rejected by the driver.
type CompileError struct {
	Stage  Stage
	Source string
	Log    string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Source)
	if log := strings.TrimRight(e.Log, "\x00\n "); log != "" {
		msg += ": " + log
	}
	return msg
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError reports a program whose stages compiled but failed to link.
type LinkError struct {
	Vertex   string
	Fragment string
	Log      string
}

func (e *LinkError) Error() string {
	msg := fmt.Sprintf("shader linking failed: %s %s", e.Vertex, e.Fragment)
	if log := strings.TrimRight(e.Log, "\x00\n "); log != "" {
		msg += ": " + log
	}
	return msg
}

func (e *LinkError) Unwrap() error { return ErrLink }

// DecodeError reports an image file that is missing or could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// MissingFieldsError lists every required field absent from a MeshConfig.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "mesh: missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingField }

func allocationError(kind ObjectKind) error {
	return fmt.Errorf("%w: %s", ErrAllocation, kind)
}
