// Package crop implements the interactive crop selection: a rectangle in the
// scaled preview's coordinate space that is hit-tested and dragged by the
// pointer, then mapped back to source pixels.
//
// A Selector is owned by a single dialog and is not safe for concurrent use.
package crop

import (
	"fmt"
	"image"
)

// FitScale returns the preview scale for a source of srcW x srcH shown inside
// maxW x maxH. It never upscales.
func FitScale(srcW, srcH, maxW, maxH int) float64 {
	if srcW <= 0 || srcH <= 0 {
		return 1
	}
	return min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH), 1.0)
}

type dragSession struct {
	handle         Handle
	startX, startY int
	orig           Rect
}

// Selector holds the crop rectangle, the active drag and the fixed scale.
type Selector struct {
	opts         Options
	srcW, srcH   int
	dispW, dispH int
	minW, minH   int
	scale        float64
	rect         Rect
	drag         *dragSession
}

// NewSelector creates a selector covering the whole preview of a srcW x srcH image.
func NewSelector(srcW, srcH int, opts Options) (*Selector, error) {
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("%w: source size %dx%d", ErrInvalidGeometry, srcW, srcH)
	}
	opts = opts.normalized()
	scale := FitScale(srcW, srcH, opts.MaxDisplayW, opts.MaxDisplayH)
	s := &Selector{
		opts:  opts,
		srcW:  srcW,
		srcH:  srcH,
		dispW: max(1, int(float64(srcW)*scale)),
		dispH: max(1, int(float64(srcH)*scale)),
		scale: scale,
	}
	// A preview narrower than MinSize can only hold a full-extent selection.
	s.minW = min(opts.MinSize, s.dispW)
	s.minH = min(opts.MinSize, s.dispH)
	s.Reset()
	return s, nil
}

// Rect returns the current selection in display coordinates.
func (s *Selector) Rect() Rect { return s.rect }

// Scale returns the display/source ratio.
func (s *Selector) Scale() float64 { return s.scale }

// DisplaySize returns the preview dimensions.
func (s *Selector) DisplaySize() (int, int) { return s.dispW, s.dispH }

// SourceSize returns the source image dimensions.
func (s *Selector) SourceSize() (int, int) { return s.srcW, s.srcH }

// Active returns the handle of the running drag, or HandleNone.
func (s *Selector) Active() Handle {
	if s.drag == nil {
		return HandleNone
	}
	return s.drag.handle
}

// HitTest returns the handle under the pointer. Corners win over edge
// midpoints, midpoints over edge proximity, and all of them over the interior.
func (s *Selector) HitTest(x, y int) Handle {
	r := s.rect
	hs, et := s.opts.HandleSize, s.opts.EdgeTolerance

	switch {
	case near(x, r.X1, hs) && near(y, r.Y1, hs):
		return HandleNW
	case near(x, r.X2, hs) && near(y, r.Y1, hs):
		return HandleNE
	case near(x, r.X1, hs) && near(y, r.Y2, hs):
		return HandleSW
	case near(x, r.X2, hs) && near(y, r.Y2, hs):
		return HandleSE
	}

	mx, my := (r.X1+r.X2)/2, (r.Y1+r.Y2)/2
	switch {
	case near(x, mx, hs) && near(y, r.Y1, hs):
		return HandleN
	case near(x, mx, hs) && near(y, r.Y2, hs):
		return HandleS
	case near(x, r.X1, hs) && near(y, my, hs):
		return HandleW
	case near(x, r.X2, hs) && near(y, my, hs):
		return HandleE
	}

	if x >= r.X1-et && x <= r.X2+et {
		if near(y, r.Y1, et) {
			return HandleN
		}
		if near(y, r.Y2, et) {
			return HandleS
		}
	}
	if y >= r.Y1-et && y <= r.Y2+et {
		if near(x, r.X1, et) {
			return HandleW
		}
		if near(x, r.X2, et) {
			return HandleE
		}
	}

	if x > r.X1 && x < r.X2 && y > r.Y1 && y < r.Y2 {
		return HandleMove
	}
	return HandleNone
}

// BeginDrag starts a drag of h at the given pointer position. HandleNone is a no-op.
func (s *Selector) BeginDrag(h Handle, x, y int) {
	if h == HandleNone {
		return
	}
	s.drag = &dragSession{handle: h, startX: x, startY: y, orig: s.rect}
}

// UpdateDrag applies the pointer delta since BeginDrag and returns the new
// selection. Without an active drag it returns the selection unchanged.
// Any pointer input yields a rectangle inside the preview bounds.
func (s *Selector) UpdateDrag(x, y int) Rect {
	d := s.drag
	if d == nil {
		return s.rect
	}
	dx, dy := x-d.startX, y-d.startY
	o := d.orig

	if d.handle == HandleMove {
		w, h := o.Width(), o.Height()
		nx1 := clamp(o.X1+dx, 0, s.dispW-w)
		ny1 := clamp(o.Y1+dy, 0, s.dispH-h)
		s.rect = Rect{X1: nx1, Y1: ny1, X2: nx1 + w, Y2: ny1 + h}
		return s.rect
	}

	n := o
	if d.handle.moves('w') {
		n.X1 = max(0, min(o.X1+dx, n.X2-s.minW))
	}
	if d.handle.moves('e') {
		n.X2 = max(n.X1+s.minW, min(o.X2+dx, s.dispW))
	}
	if d.handle.moves('n') {
		n.Y1 = max(0, min(o.Y1+dy, n.Y2-s.minH))
	}
	if d.handle.moves('s') {
		n.Y2 = max(n.Y1+s.minH, min(o.Y2+dy, s.dispH))
	}
	s.rect = n
	return s.rect
}

// EndDrag discards the drag session. Safe to call repeatedly.
func (s *Selector) EndDrag() { s.drag = nil }

// Reset selects the whole preview and drops any drag in progress.
func (s *Selector) Reset() {
	s.rect = Rect{X1: 0, Y1: 0, X2: s.dispW, Y2: s.dispH}
	s.drag = nil
}

// SourceRect maps the current selection to source pixels without validation.
func (s *Selector) SourceRect() image.Rectangle {
	r := s.rect
	return image.Rectangle{
		Min: image.Pt(s.toSource(r.X1, s.dispW, s.srcW), s.toSource(r.Y1, s.dispH, s.srcH)),
		Max: image.Pt(s.toSource(r.X2, s.dispW, s.srcW), s.toSource(r.Y2, s.dispH, s.srcH)),
	}
}

// Finalize returns the selection in source pixels, ready for cropping.
func (s *Selector) Finalize() (image.Rectangle, error) {
	r := s.SourceRect()
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return image.Rectangle{}, fmt.Errorf("%w: source rect (%d,%d)-(%d,%d) from display %+v at scale %g",
			ErrInvalidGeometry, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, s.rect, s.scale)
	}
	return r, nil
}

// toSource truncates v/scale into [0, srcMax]. The preview's far edge maps to
// the source's far edge exactly so a full selection round-trips.
func (s *Selector) toSource(v, dispMax, srcMax int) int {
	if v >= dispMax {
		return srcMax
	}
	return clamp(int(float64(v)/s.scale), 0, srcMax)
}

func near(a, b, tol int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func clamp(v, lo, hi int) int { return max(lo, min(v, hi)) }
