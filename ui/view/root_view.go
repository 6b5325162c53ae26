package view

import (
	"log/slog"

	"github.com/soocke/pdfimg-tool/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Actions are the launcher callbacks. Nil entries leave their button disabled.
type Actions struct {
	MergePDFs      func()
	SplitPDF       func()
	ResizeImage    func()
	ImagesToPDF    func()
	CropImage      func()
	CompressImage  func()
	LockPDF        func()
	UnlockPDF      func()
	CropScreenshot func()
}

// RootView composes the launcher: title, the operation grid, the status line
// and the footer.
type RootView struct {
	logger *slog.Logger

	Status StatusBar
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

type launcherButton struct {
	text string
	fn   func()
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(a Actions) {
	if rv == nil {
		return
	}
	container := TFrame(Padding("40p"))
	Pack(container, Expand(true), Fill("both"))

	title := TLabel(Txt("Image & PDF Utility Tool"), Style(theme.StyleTitleLabel))
	Grid(title, In(container), Row(0), Column(0), Columnspan(3), Pady("0 6m"))
	subtitle := TLabel(Txt("Choose an operation:"), Style(theme.StyleSubtitleLabel))
	Grid(subtitle, In(container), Row(1), Column(0), Columnspan(3), Pady("0 4m"))

	buttons := [][]launcherButton{
		{{"Merge PDFs", a.MergePDFs}, {"Split PDF", a.SplitPDF}, {"Resize Image", a.ResizeImage}},
		{{"JPG to PDF", a.ImagesToPDF}, {"Crop Image", a.CropImage}, {"Compress Image", a.CompressImage}},
		{{"Lock PDF", a.LockPDF}, {"Unlock PDF", a.UnlockPDF}, {"Crop Screenshot", a.CropScreenshot}},
	}
	for r, row := range buttons {
		for c, b := range row {
			btn := TButton(Txt(b.text), Style(theme.StylePrimaryButton), Cursor("hand2"))
			if b.fn != nil {
				btn.Configure(Command(b.fn))
			} else {
				btn.Configure(State("disabled"))
			}
			Grid(btn, In(container), Row(r+2), Column(c), Sticky("we"), Padx("3m"), Pady("3m"))
		}
	}

	rv.Status = NewStatusBar(container, 5, 3)
	footer := TLabel(Txt("Built with Love, Welcome to my tool"), Style(theme.StyleMutedLabel))
	Grid(footer, In(container), Row(6), Column(0), Columnspan(3), Pady("4m 0"))
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}
