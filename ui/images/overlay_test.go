package images

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestOverlay_DimsOutsideSelectionOnly(t *testing.T) {
	base := solid(200, 100, color.RGBA{200, 200, 200, 255})
	dst := image.NewRGBA(base.Bounds())
	DefaultOverlay(10).Render(dst, base, image.Rect(50, 20, 150, 80))

	inside := dst.RGBAAt(100, 50)
	if inside != (color.RGBA{200, 200, 200, 255}) {
		t.Fatalf("expected untouched interior got %v", inside)
	}
	outside := dst.RGBAAt(10, 10)
	if outside.R >= 200 || outside.A != 255 {
		t.Fatalf("expected dimmed exterior got %v", outside)
	}
}

func TestOverlay_DrawsBorderAndHandles(t *testing.T) {
	base := solid(200, 100, color.RGBA{255, 255, 255, 255})
	dst := image.NewRGBA(base.Bounds())
	o := DefaultOverlay(10)
	o.Render(dst, base, image.Rect(50, 20, 150, 80))

	if got := dst.RGBAAt(70, 20); got != o.Border {
		t.Fatalf("expected border at top edge got %v", got)
	}
	if got := dst.RGBAAt(50, 20); got != o.Handle {
		t.Fatalf("expected handle fill at nw corner got %v", got)
	}
	if got := dst.RGBAAt(45, 15); got != o.HandleRim {
		t.Fatalf("expected handle rim at corner square edge got %v", got)
	}
}

func TestOverlay_RenderPNGRecyclesFrame(t *testing.T) {
	base := solid(64, 48, color.RGBA{10, 20, 30, 255})
	data := DefaultOverlay(10).RenderPNG(base, image.Rect(0, 0, 64, 48))
	if len(data) == 0 {
		t.Fatalf("expected png bytes")
	}
}

func TestAcquireFrame_SizesBuffer(t *testing.T) {
	f := AcquireFrame(image.Rect(0, 0, 30, 20))
	if len(f.Pix) != 30*20*4 || f.Stride != 120 {
		t.Fatalf("unexpected frame pix=%d stride=%d", len(f.Pix), f.Stride)
	}
	RecycleFrame(f)
	g := AcquireFrame(image.Rect(0, 0, 10, 10))
	if len(g.Pix) != 400 || g.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("unexpected reused frame pix=%d bounds=%v", len(g.Pix), g.Bounds())
	}
	if e := AcquireFrame(image.Rectangle{}); len(e.Pix) != 0 {
		t.Fatalf("expected empty frame")
	}
}

func TestScaleTo_ClampsToOnePixel(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	if got := ScaleTo(big, 400, 200).Bounds(); got.Dx() != 400 || got.Dy() != 200 {
		t.Fatalf("expected 400x200 got %v", got)
	}
	if got := ScaleTo(big, 0, 3).Bounds(); got.Dx() != 1 || got.Dy() != 3 {
		t.Fatalf("expected 1x3 got %v", got)
	}
}
