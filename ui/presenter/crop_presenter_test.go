package presenter

import (
	"image"
	"testing"

	"github.com/soocke/pdfimg-tool/domain/crop"
)

func newCropSession(t *testing.T, w, h int) (*CropPresenter, *mockCropView) {
	t.Helper()
	cp, err := NewCropPresenter("photo.jpg", image.NewGray(image.Rect(0, 0, w, h)), crop.DefaultOptions())
	if err != nil {
		t.Fatalf("new crop presenter: %v", err)
	}
	v := &mockCropView{}
	cp.Attach(v)
	return cp, v
}

func TestCropPresenter_AttachDrawsFullSelection(t *testing.T) {
	cp, v := newCropSession(t, 1600, 1200)
	if dw, dh := cp.DisplaySize(); dw != 800 || dh != 600 {
		t.Fatalf("expected 800x600 preview got %dx%d", dw, dh)
	}
	if v.frames != 1 || v.info != "Crop Size: 1600 x 1200 px" || v.cursor() != "arrow" {
		t.Fatalf("unexpected initial view state frames=%d info=%q cursor=%q", v.frames, v.info, v.cursor())
	}
	if cp.Header() != "File: photo.jpg | Original: 1600 x 1200 px" {
		t.Fatalf("unexpected header %q", cp.Header())
	}
}

func TestCropPresenter_CursorFollowsHandles(t *testing.T) {
	cp, v := newCropSession(t, 1600, 1200)
	cases := []struct {
		x, y int
		want string
	}{
		{0, 0, "top_left_corner"},
		{800, 0, "top_right_corner"},
		{0, 600, "bottom_left_corner"},
		{800, 600, "bottom_right_corner"},
		{400, 0, "sb_v_double_arrow"},
		{0, 300, "sb_h_double_arrow"},
		{400, 300, "fleur"},
	}
	for _, c := range cases {
		cp.Motion(c.x, c.y)
		if v.cursor() != c.want {
			t.Fatalf("(%d,%d): expected %s got %s", c.x, c.y, c.want, v.cursor())
		}
	}
	n := len(v.cursors)
	cp.Motion(401, 301)
	if len(v.cursors) != n {
		t.Fatalf("expected unchanged cursor not to be re-sent")
	}
}

func TestCropPresenter_DragResizesAndConfirms(t *testing.T) {
	cp, v := newCropSession(t, 1600, 1200)
	var got image.Rectangle
	cp.OnConfirm = func(r image.Rectangle) bool { got = r; return true }

	cp.Press(800, 600)
	cp.Drag(400, 300)
	cp.Motion(0, 0) // ignored while dragging
	cp.Release(400, 300)
	if v.info != "Crop Size: 800 x 600 px" {
		t.Fatalf("unexpected info %q", v.info)
	}
	if v.cursor() != "bottom_right_corner" {
		t.Fatalf("expected corner cursor after release got %q", v.cursor())
	}
	if !cp.Confirm() || got != image.Rect(0, 0, 800, 600) {
		t.Fatalf("expected confirmed (0,0)-(800,600) got %v", got)
	}

	cp.Reset()
	if cp.Selection() != image.Rect(0, 0, 1600, 1200) || v.info != "Crop Size: 1600 x 1200 px" {
		t.Fatalf("expected reset to full image got %v / %q", cp.Selection(), v.info)
	}
}

func TestCropPresenter_DragWithoutPressIsNoop(t *testing.T) {
	cp, v := newCropSession(t, 300, 200)
	frames := v.frames
	cp.Press(-50, -50) // outside the selection
	cp.Drag(10, 10)
	if v.frames != frames || cp.Selection() != image.Rect(0, 0, 300, 200) {
		t.Fatalf("expected no redraw or change, frames=%d sel=%v", v.frames, cp.Selection())
	}
}

func TestCropPresenter_ConfirmWithoutHandler(t *testing.T) {
	cp, _ := newCropSession(t, 300, 200)
	if cp.Confirm() {
		t.Fatalf("expected confirm without handler to keep the dialog open")
	}
	if _, err := NewCropPresenter("x", nil, crop.DefaultOptions()); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
