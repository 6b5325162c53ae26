package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pdfimg-tool/ui/presenter"
	"github.com/soocke/pdfimg-tool/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Forms implements the operation dialogs as modal-looking Toplevels. Input
// validation lives in the presenter; a form closes once submit accepts it.
type Forms struct {
	logger *slog.Logger
}

func NewForms(logger *slog.Logger) *Forms { return &Forms{logger: logger} }

// dialog is a small row builder over one Toplevel.
type dialog struct {
	win *ToplevelWidget
	row int
}

func newDialog(title string, w, h int) *dialog {
	win := App.Toplevel(Borderwidth(0), Background(theme.ColorBg))
	win.WmTitle(title)
	sw, sh := computeCenteredGeometry()
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", w, h, (int(sw)-w)/2, (int(sh)-h)/2))
	GridColumnConfigure(win.Window, 0, Weight(1))
	d := &dialog{win: win}
	Bind(win, "<Escape>", Command(d.close))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", d.close)
	return d
}

func (d *dialog) close() {
	if d.win != nil {
		Destroy(d.win)
		d.win = nil
	}
}

func (d *dialog) label(text, style string) *TLabelWidget {
	lbl := d.win.TLabel(Txt(text), Style(style), Anchor("center"))
	Grid(lbl, Row(d.row), Column(0), Columnspan(2), Sticky("we"), Padx("4m"), Pady("1m"))
	d.row++
	return lbl
}

// entry adds a labelled entry. Secret entries echo '*'.
func (d *dialog) entry(caption, value, unit string, secret bool) *TEntryWidget {
	frame := d.win.TFrame()
	Grid(frame, Row(d.row), Column(0), Columnspan(2), Pady("1m"))
	d.row++
	lbl := d.win.TLabel(Txt(caption), Style(theme.StyleSubtitleLabel))
	Grid(lbl, In(frame), Row(0), Column(0), Sticky("e"), Padx("1m"))
	opts := []Opt{Textvariable(value), Width(15)}
	if secret {
		opts = append(opts, Show("*"))
	}
	e := d.win.TEntry(opts...)
	Grid(e, In(frame), Row(0), Column(1), Sticky("w"), Padx("1m"))
	if unit != "" {
		u := d.win.TLabel(Txt(unit), Style(theme.StyleMutedLabel))
		Grid(u, In(frame), Row(0), Column(2), Sticky("w"))
	}
	return e
}

// actions adds the primary button and Cancel. Return triggers the primary.
func (d *dialog) actions(primary string, submit func() bool) {
	frame := d.win.TFrame()
	Grid(frame, Row(d.row), Column(0), Columnspan(2), Pady("4m"))
	d.row++
	run := func() {
		if submit() {
			d.close()
		}
	}
	ok := d.win.TButton(Txt(primary), Style(theme.StylePrimaryButton), Cursor("hand2"), Command(run))
	Grid(ok, In(frame), Row(0), Column(0), Padx("2m"))
	cancel := d.win.TButton(Txt("Cancel"), Style(theme.StyleSecondaryButton), Cursor("hand2"), Command(d.close))
	Grid(cancel, In(frame), Row(0), Column(1), Padx("2m"))
	Bind(d.win, "<Return>", Command(run))
}

// fieldText returns the entry verbatim. The presenter trims numeric fields;
// passwords keep their spaces.
func fieldText(e *TEntryWidget) string {
	if e == nil {
		return ""
	}
	return e.Textvariable()
}

// AskResize shows the new width/height form with an aspect ratio helper.
func (f *Forms) AskResize(form presenter.ResizeForm, submit func(w, h string) bool) {
	d := newDialog("Resize Image", 420, 320)
	d.label("Resize Image", theme.StyleTitleLabel)
	d.label("File: "+form.Name, theme.StyleMutedLabel)
	d.label(fmt.Sprintf("Original Size: %d x %d pixels", form.Width, form.Height), theme.StyleSubtitleLabel)
	we := d.entry("New Width:", strconv.Itoa(form.Width), "px", false)
	he := d.entry("New Height:", strconv.Itoa(form.Height), "px", false)
	keep := d.win.TButton(Txt("Keep Aspect Ratio"), Style(theme.StyleSecondaryButton), Command(func() {
		w, ok := parseIntField(fieldText(we))
		if !ok || w <= 0 {
			return
		}
		he.Configure(Textvariable(strconv.Itoa(presenter.AspectHeight(w, form.Width, form.Height))))
	}))
	Grid(keep, Row(d.row), Column(0), Columnspan(2), Pady("1m"))
	d.row++
	d.actions("Resize & Save", func() bool { return submit(fieldText(we), fieldText(he)) })
}

// AskCompress shows the target size form.
func (f *Forms) AskCompress(form presenter.CompressForm, submit func(targetKB string) bool) {
	d := newDialog("Compress Image", 440, 330)
	d.label("Compress Image", theme.StyleTitleLabel)
	d.label("File: "+form.Name, theme.StyleMutedLabel)
	d.label(fmt.Sprintf("Dimensions: %d x %d pixels", form.Width, form.Height), theme.StyleSubtitleLabel)
	d.label(fmt.Sprintf("Current Size: %.2f KB (%d bytes)", float64(form.SizeBytes)/1024, form.SizeBytes), theme.StyleSubtitleLabel)
	e := d.entry("Target Size:", strconv.Itoa(form.DefaultKB), "KB", false)
	d.label("The image is re-encoded as JPEG and downscaled if needed.", theme.StyleMutedLabel)
	d.actions("Compress & Save", func() bool { return submit(fieldText(e)) })
}

// AskRanges shows the page range form used by split.
func (f *Forms) AskRanges(form presenter.SplitForm, submit func(ranges string) bool) {
	d := newDialog("Split PDF", 420, 270)
	d.label("Split PDF", theme.StyleTitleLabel)
	d.label("File: "+form.Name, theme.StyleMutedLabel)
	d.label(fmt.Sprintf("Total pages: %d", form.Pages), theme.StyleSubtitleLabel)
	e := d.entry("Pages:", "", "", false)
	d.label("e.g. 1-3, 5, 7-9", theme.StyleMutedLabel)
	d.actions("Split & Save", func() bool { return submit(fieldText(e)) })
}

// AskPassword shows the lock (password + confirmation) or unlock form.
func (f *Forms) AskPassword(form presenter.PasswordForm, submit func(password, confirm string) bool) {
	h := 230
	if form.Confirm {
		h = 280
	}
	d := newDialog(form.Title, 400, h)
	d.label(form.Title, theme.StyleTitleLabel)
	d.label("File: "+form.Name, theme.StyleMutedLabel)
	pw := d.entry("Password:", "", "", true)
	var confirm *TEntryWidget
	if form.Confirm {
		confirm = d.entry("Confirm:", "", "", true)
	}
	d.actions(form.Title, func() bool { return submit(fieldText(pw), fieldText(confirm)) })
	if f.logger != nil {
		f.logger.Debug("password form opened", "title", form.Title)
	}
}

// OpenCrop shows the interactive crop window for p.
func (f *Forms) OpenCrop(p *presenter.CropPresenter) {
	if p == nil {
		return
	}
	newCropDialog(p, f.logger)
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

// computeCenteredGeometry returns the screen width and height used to center
// dialogs.
func computeCenteredGeometry() (float64, float64) {
	return 1920, 1080
}
