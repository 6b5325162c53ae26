package presenter

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/soocke/pdfimg-tool/domain/imageops"
	"github.com/soocke/pdfimg-tool/domain/pdf"
	"github.com/soocke/pdfimg-tool/ui/model"
)

type message struct{ title, text string }

type mockNotifier struct {
	infos, errors []message
}

func (n *mockNotifier) Info(title, msg string)  { n.infos = append(n.infos, message{title, msg}) }
func (n *mockNotifier) Error(title, msg string) { n.errors = append(n.errors, message{title, msg}) }

func (n *mockNotifier) lastError() string {
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1].text
}

func (n *mockNotifier) lastInfo() string {
	if len(n.infos) == 0 {
		return ""
	}
	return n.infos[len(n.infos)-1].text
}

type mockDialogs struct {
	open      []string
	save      string
	saveCalls []string // initial names offered
}

func (d *mockDialogs) OpenFiles(title string, kind FileKind, multiple bool) []string { return d.open }
func (d *mockDialogs) SaveFile(title, initial string, kind FileKind) string {
	d.saveCalls = append(d.saveCalls, initial)
	return d.save
}

type mockForms struct {
	resize   func(w, h string) bool
	compress func(kb string) bool
	ranges   func(s string) bool
	password func(pw, confirm string) bool

	compressForm CompressForm
	splitForm    SplitForm
	passwordForm PasswordForm
	crop         *CropPresenter
}

func (f *mockForms) AskResize(_ ResizeForm, submit func(w, h string) bool) { f.resize = submit }
func (f *mockForms) AskCompress(form CompressForm, submit func(kb string) bool) {
	f.compressForm, f.compress = form, submit
}
func (f *mockForms) AskRanges(form SplitForm, submit func(s string) bool) {
	f.splitForm, f.ranges = form, submit
}
func (f *mockForms) AskPassword(form PasswordForm, submit func(pw, confirm string) bool) {
	f.passwordForm, f.password = form, submit
}
func (f *mockForms) OpenCrop(p *CropPresenter) { f.crop = p }

type fakeImages struct {
	img      image.Image
	size     int64
	loadErr  error
	cropRect image.Rectangle
	resized  [2]int
	targetKB int
	block    chan struct{}
}

func (f *fakeImages) Load(path string) (image.Image, int64, error) {
	if f.loadErr != nil {
		return nil, 0, f.loadErr
	}
	return f.img, f.size, nil
}

func (f *fakeImages) Crop(src string, r image.Rectangle, out string) (imageops.Report, error) {
	f.cropRect = r
	b := f.img.Bounds()
	return imageops.Report{Src: src, Out: out, SrcW: b.Dx(), SrcH: b.Dy(), OutW: r.Dx(), OutH: r.Dy()}, nil
}

func (f *fakeImages) CropImage(img image.Image, r image.Rectangle, out string) (imageops.Report, error) {
	return f.Crop("", r, out)
}

func (f *fakeImages) Resize(src string, w, h int, out string) (imageops.Report, error) {
	f.resized = [2]int{w, h}
	return imageops.Report{Src: src, Out: out, SrcW: 100, SrcH: 50, OutW: w, OutH: h}, nil
}

func (f *fakeImages) Compress(ctx context.Context, src string, targetKB int, out string) (imageops.Report, error) {
	if f.block != nil {
		<-f.block
	}
	f.targetKB = targetKB
	return imageops.Report{Src: src, Out: out, SrcW: 100, SrcH: 50, OutW: 50, OutH: 25, SrcBytes: 4096, OutBytes: 1024}, nil
}

type fakeDocs struct {
	pages     int
	merged    []string
	ranges    []pdf.PageRange
	locked    string
	unlocked  string
	unlockErr error
}

func (d *fakeDocs) PageCount(path string) (int, error) { return d.pages, nil }
func (d *fakeDocs) Merge(inputs []string, out string) error {
	d.merged = inputs
	return nil
}
func (d *fakeDocs) Split(in string, ranges []pdf.PageRange, out string) (int, error) {
	d.ranges = ranges
	return pdf.TotalPages(ranges), nil
}
func (d *fakeDocs) ImagesToPDF(ctx context.Context, images []string, out string) error { return nil }
func (d *fakeDocs) Lock(in, out, password, confirm string) error {
	d.locked = password
	return nil
}
func (d *fakeDocs) Unlock(in, out, password string) error {
	d.unlocked = password
	return d.unlockErr
}

// harness wires an OpsPresenter to fakes and a real Loop.
type harness struct {
	loop    *Loop
	busy    *model.BusyModel
	notify  *mockNotifier
	dialogs *mockDialogs
	forms   *mockForms
	images  *fakeImages
	docs    *fakeDocs
	ops     *OpsPresenter
}

func newHarness() *harness {
	h := &harness{
		loop:    &Loop{},
		busy:    &model.BusyModel{},
		notify:  &mockNotifier{},
		dialogs: &mockDialogs{},
		forms:   &mockForms{},
		images:  &fakeImages{img: image.NewGray(image.Rect(0, 0, 100, 50)), size: 2000 * 1024},
		docs:    &fakeDocs{pages: 10},
	}
	runner := NewJobRunner(context.Background(), h.busy, h.loop, h.notify, nil)
	h.ops = NewOpsPresenter(h.images, h.docs, nil, runner, h.dialogs, h.forms, nil, nil)
	return h
}

// settle waits for posted job results and runs them.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.loop.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for job result")
		}
		time.Sleep(time.Millisecond)
	}
	h.loop.Tick()
}

type mockCropView struct {
	frames  int
	cursors []string
	info    string
}

func (v *mockCropView) ShowPreview(png []byte) {
	if len(png) > 0 {
		v.frames++
	}
}
func (v *mockCropView) SetCursor(c string)      { v.cursors = append(v.cursors, c) }
func (v *mockCropView) SetCropInfo(text string) { v.info = text }

func (v *mockCropView) cursor() string {
	if len(v.cursors) == 0 {
		return ""
	}
	return v.cursors[len(v.cursors)-1]
}
