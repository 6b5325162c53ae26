package imageops

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/pdfimg-tool/domain/compress"
	"github.com/soocke/pdfimg-tool/domain/imageio"
)

// noisy writes a w x h image of random pixels so JPEG output stays large.
func noisy(t *testing.T, path string, w, h int) {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	if _, err := imageio.SaveImage(path, img, 100); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func TestService_CropWritesSelection(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	noisy(t, src, 120, 80)
	svc := NewService(nil, 95, nil)

	out := filepath.Join(dir, "cropped_photo.png")
	rep, err := svc.Crop(src, image.Rect(10, 20, 70, 60), out)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if rep.SrcW != 120 || rep.SrcH != 80 || rep.OutW != 60 || rep.OutH != 40 {
		t.Fatalf("unexpected report %+v", rep)
	}
	img, err := imageio.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("expected 60x40 got %v", b)
	}
	if _, err := svc.Crop(src, image.Rect(100, 0, 130, 10), out); !errors.Is(err, imageio.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds got %v", err)
	}
}

func TestService_ResizeValidatesSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	noisy(t, src, 64, 48)
	svc := NewService(nil, 90, nil)

	out := filepath.Join(dir, "resized_photo.jpg")
	rep, err := svc.Resize(src, 32, 20, out)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if rep.OutW != 32 || rep.OutH != 20 || rep.OutBytes <= 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if _, err := svc.Resize(src, 0, 20, out); !errors.Is(err, imageio.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize got %v", err)
	}
}

func TestService_CompressHitsTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	noisy(t, src, 400, 300)
	svc := NewService(nil, 95, nil)

	out := filepath.Join(dir, "compressed_photo.jpg")
	rep, err := svc.Compress(context.Background(), src, 20, out)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if rep.Unreachable || fi.Size() > 20*1024 || fi.Size() != rep.OutBytes {
		t.Fatalf("expected output <= 20KB matching report, got size=%d report=%+v", fi.Size(), rep)
	}
	if rep.OutW >= 400 || rep.Reduction() <= 0 {
		t.Fatalf("expected downscaled output with a reduction, got %+v", rep)
	}
	if _, err := svc.Compress(context.Background(), src, 0, out); !errors.Is(err, compress.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget got %v", err)
	}
}

func TestService_LoadMissingFile(t *testing.T) {
	svc := NewService(nil, 95, nil)
	_, _, err := svc.Load(filepath.Join(t.TempDir(), "nope.png"))
	var decErr *imageio.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError got %v", err)
	}
}
