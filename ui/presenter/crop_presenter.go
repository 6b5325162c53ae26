package presenter

import (
	"fmt"
	"image"

	"github.com/soocke/pdfimg-tool/domain/crop"
	"github.com/soocke/pdfimg-tool/ui/images"
)

// CropView is the interactive surface of the crop dialog.
type CropView interface {
	ShowPreview(png []byte)
	SetCursor(cursor string)
	SetCropInfo(text string)
}

// handleCursors maps handles to Tk cursor names.
var handleCursors = map[crop.Handle]string{
	crop.HandleNW:   "top_left_corner",
	crop.HandleNE:   "top_right_corner",
	crop.HandleSW:   "bottom_left_corner",
	crop.HandleSE:   "bottom_right_corner",
	crop.HandleN:    "sb_v_double_arrow",
	crop.HandleS:    "sb_v_double_arrow",
	crop.HandleW:    "sb_h_double_arrow",
	crop.HandleE:    "sb_h_double_arrow",
	crop.HandleMove: "fleur",
}

// CursorFor returns the pointer shape shown over h.
func CursorFor(h crop.Handle) string {
	if c, ok := handleCursors[h]; ok {
		return c
	}
	return "arrow"
}

// CropPresenter owns one crop session: it feeds pointer events to the
// selector, redraws the overlay and reports the selection in source pixels.
// All methods run on the UI thread.
type CropPresenter struct {
	name    string
	preview image.Image
	sel     *crop.Selector
	overlay images.Overlay
	view    CropView
	cursor  string

	// OnConfirm receives the final source rectangle. Returning true closes
	// the dialog.
	OnConfirm func(r image.Rectangle) bool
}

// NewCropPresenter prepares a session for src, shown under name.
func NewCropPresenter(name string, src image.Image, opts crop.Options) (*CropPresenter, error) {
	if src == nil {
		return nil, crop.ErrInvalidGeometry
	}
	b := src.Bounds()
	sel, err := crop.NewSelector(b.Dx(), b.Dy(), opts)
	if err != nil {
		return nil, err
	}
	dw, dh := sel.DisplaySize()
	hs := opts.HandleSize
	if hs <= 0 {
		hs = crop.DefaultHandleSize
	}
	return &CropPresenter{
		name:    name,
		preview: images.ScaleTo(src, dw, dh),
		sel:     sel,
		overlay: images.DefaultOverlay(hs),
	}, nil
}

// Header is the file line shown above the preview.
func (p *CropPresenter) Header() string {
	w, h := p.sel.SourceSize()
	return fmt.Sprintf("File: %s | Original: %d x %d px", p.name, w, h)
}

// DisplaySize is the preview size in screen pixels.
func (p *CropPresenter) DisplaySize() (int, int) { return p.sel.DisplaySize() }

// Name returns the display name of the source.
func (p *CropPresenter) Name() string { return p.name }

// Attach binds the view and draws the initial state.
func (p *CropPresenter) Attach(v CropView) {
	p.view = v
	p.cursor = ""
	p.redraw()
	p.setCursor(CursorFor(crop.HandleNone))
}

// Motion updates the cursor while no drag is active.
func (p *CropPresenter) Motion(x, y int) {
	if p.sel.Active() != crop.HandleNone {
		return
	}
	p.setCursor(CursorFor(p.sel.HitTest(x, y)))
}

// Press starts a drag on whatever handle is under the pointer.
func (p *CropPresenter) Press(x, y int) {
	h := p.sel.HitTest(x, y)
	p.sel.BeginDrag(h, x, y)
	p.setCursor(CursorFor(h))
}

// Drag moves the active handle to the pointer.
func (p *CropPresenter) Drag(x, y int) {
	if p.sel.Active() == crop.HandleNone {
		return
	}
	p.sel.UpdateDrag(x, y)
	p.redraw()
}

// Release ends the drag.
func (p *CropPresenter) Release(x, y int) {
	p.sel.EndDrag()
	p.setCursor(CursorFor(p.sel.HitTest(x, y)))
}

// Reset selects the whole image again.
func (p *CropPresenter) Reset() {
	p.sel.Reset()
	p.redraw()
}

// Selection returns the current selection in source pixels.
func (p *CropPresenter) Selection() image.Rectangle { return p.sel.SourceRect() }

// Confirm validates the selection and hands it to OnConfirm.
func (p *CropPresenter) Confirm() bool {
	r, err := p.sel.Finalize()
	if err != nil || p.OnConfirm == nil {
		return false
	}
	return p.OnConfirm(r)
}

func (p *CropPresenter) redraw() {
	if p.view == nil {
		return
	}
	p.view.ShowPreview(p.overlay.RenderPNG(p.preview, p.sel.Rect().Image()))
	r := p.sel.SourceRect()
	p.view.SetCropInfo(fmt.Sprintf("Crop Size: %d x %d px", r.Dx(), r.Dy()))
}

func (p *CropPresenter) setCursor(c string) {
	if p.view == nil || c == p.cursor {
		return
	}
	p.cursor = c
	p.view.SetCursor(c)
}
