package crop

import (
	"errors"
	"image"
	"strings"
)

// ErrInvalidGeometry reports a rectangle or scale that violates the selector bounds.
// It always indicates a caller bug and is never produced by pointer input.
var ErrInvalidGeometry = errors.New("crop: invalid geometry")

// Default geometry constants, in display pixels.
const (
	DefaultHandleSize    = 10
	DefaultEdgeTolerance = 8
	DefaultMinSize       = 20
	DefaultMaxDisplayW   = 800
	DefaultMaxDisplayH   = 600
)

// Handle identifies the draggable part of the selection under the pointer.
type Handle string

const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleNE   Handle = "ne"
	HandleSW   Handle = "sw"
	HandleSE   Handle = "se"
	HandleN    Handle = "n"
	HandleS    Handle = "s"
	HandleW    Handle = "w"
	HandleE    Handle = "e"
	HandleMove Handle = "move"
)

func (h Handle) String() string {
	if h == HandleNone {
		return "none"
	}
	return string(h)
}

// moves reports whether a resize drag on h adjusts the given edge ('n','s','w','e').
func (h Handle) moves(edge byte) bool {
	if h == HandleNone || h == HandleMove {
		return false
	}
	return strings.IndexByte(string(h), edge) >= 0
}

// Rect is a selection in display coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

func (r Rect) Width() int  { return r.X2 - r.X1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle { return image.Rect(r.X1, r.Y1, r.X2, r.Y2) }

// Options tunes selector geometry. Zero fields fall back to the defaults.
type Options struct {
	HandleSize    int
	EdgeTolerance int
	MinSize       int
	MaxDisplayW   int
	MaxDisplayH   int
}

// DefaultOptions returns the standard 800x600 preview geometry.
func DefaultOptions() Options {
	return Options{
		HandleSize:    DefaultHandleSize,
		EdgeTolerance: DefaultEdgeTolerance,
		MinSize:       DefaultMinSize,
		MaxDisplayW:   DefaultMaxDisplayW,
		MaxDisplayH:   DefaultMaxDisplayH,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.HandleSize <= 0 {
		o.HandleSize = d.HandleSize
	}
	if o.EdgeTolerance <= 0 {
		o.EdgeTolerance = d.EdgeTolerance
	}
	if o.MinSize <= 0 {
		o.MinSize = d.MinSize
	}
	if o.MaxDisplayW <= 0 {
		o.MaxDisplayW = d.MaxDisplayW
	}
	if o.MaxDisplayH <= 0 {
		o.MaxDisplayH = d.MaxDisplayH
	}
	return o
}
