package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/pdfimg-tool/ui/images"
	"github.com/soocke/pdfimg-tool/ui/presenter"
	"github.com/soocke/pdfimg-tool/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// cropDialog is the Tk side of the crop selector. It forwards pointer events
// in preview coordinates to the presenter and renders what it gets back.
type cropDialog struct {
	p       *presenter.CropPresenter
	logger  *slog.Logger
	win     *ToplevelWidget
	preview *LabelWidget
	photo   *Img
	info    *TLabelWidget
}

func newCropDialog(p *presenter.CropPresenter, logger *slog.Logger) *cropDialog {
	v := &cropDialog{p: p, logger: logger}
	dw, dh := p.DisplaySize()
	w, h := dw+80, dh+200
	win := App.Toplevel(Borderwidth(0), Background(theme.ColorBg))
	win.WmTitle("Crop Image")
	sw, sh := computeCenteredGeometry()
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", w, h, max(0, (int(sw)-w)/2), max(0, (int(sh)-h)/2)))
	GridColumnConfigure(win.Window, 0, Weight(1))
	v.win = win

	header := win.TLabel(Txt(p.Header()), Style(theme.StyleSubtitleLabel))
	Grid(header, Row(0), Column(0), Pady("2m"))
	hint := win.TLabel(Txt("Drag the handles or edges to adjust the crop area"), Style(theme.StyleMutedLabel))
	Grid(hint, Row(1), Column(0))

	v.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, dw, dh)))))
	v.preview = win.Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.preview, Row(2), Column(0), Pady("2m"))

	v.info = win.TLabel(Txt(""), Style(theme.StyleInfoLabel))
	Grid(v.info, Row(3), Column(0))

	controls := win.TFrame()
	Grid(controls, Row(4), Column(0), Pady("3m"))
	reset := win.TButton(Txt("Reset"), Style(theme.StyleSecondaryButton), Command(p.Reset))
	Grid(reset, In(controls), Row(0), Column(0), Padx("2m"))
	save := win.TButton(Txt("Crop & Save"), Style(theme.StylePrimaryButton), Cursor("hand2"), Command(v.confirm))
	Grid(save, In(controls), Row(0), Column(1), Padx("2m"))
	cancel := win.TButton(Txt("Cancel"), Style(theme.StyleSecondaryButton), Command(v.close))
	Grid(cancel, In(controls), Row(0), Column(2), Padx("2m"))

	Bind(v.preview, "<Motion>", Command(func(e *Event) { p.Motion(e.X, e.Y) }))
	Bind(v.preview, "<ButtonPress-1>", Command(func(e *Event) { p.Press(e.X, e.Y) }))
	Bind(v.preview, "<B1-Motion>", Command(func(e *Event) { p.Drag(e.X, e.Y) }))
	Bind(v.preview, "<ButtonRelease-1>", Command(func(e *Event) { p.Release(e.X, e.Y) }))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.close))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)

	// Attach renders the initial full-image selection.
	p.Attach(v)
	return v
}

func (v *cropDialog) confirm() {
	if v.p.Confirm() {
		if v.logger != nil {
			v.logger.Debug("crop confirmed", "name", v.p.Name(), "rect", v.p.Selection())
		}
		v.close()
	}
}

func (v *cropDialog) close() {
	if v.win == nil {
		return
	}
	Destroy(v.win)
	v.win = nil
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
}

// ShowPreview swaps the preview photo, disposing the previous one.
func (v *cropDialog) ShowPreview(png []byte) {
	if v.win == nil || v.preview == nil {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(png))
	v.preview.Configure(Image(v.photo))
}

func (v *cropDialog) SetCursor(name string) {
	if v.win != nil && v.preview != nil {
		v.preview.Configure(Cursor(name))
	}
}

func (v *cropDialog) SetCropInfo(text string) {
	if v.win != nil && v.info != nil {
		v.info.Configure(Txt(text))
	}
}
