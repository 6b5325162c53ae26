package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x + y), 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.JPG":     FormatJPEG,
		"b.jpeg":    FormatJPEG,
		"dir/c.png": FormatPNG,
		"d.webp":    FormatWebP,
		"e.tif":     FormatTIFF,
		"f.BMP":     FormatBMP,
		"g.gif":     FormatGIF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("%s: expected %s got %s (err=%v)", path, want, got, err)
		}
	}
	if _, err := FormatFromPath("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat got %v", err)
	}
}

func TestToRGB_FlattensAlphaOnWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	src.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	out := ToRGB(src)
	r, g, b, a := out.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Fatalf("expected transparent pixel to become white, got %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
	r, g, b, _ = out.At(1, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("expected opaque red preserved, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestToRGB_OpaquePassesThrough(t *testing.T) {
	src := gradient(4, 4)
	if out := ToRGB(src); out != image.Image(src) {
		t.Fatalf("expected opaque image returned unchanged")
	}
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	if out := ToRGB(gray); out != image.Image(gray) {
		t.Fatalf("expected gray image returned unchanged")
	}
}

func TestToRGB_ExpandsPalette(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	if _, ok := ToRGB(pal).(*image.RGBA); !ok {
		t.Fatalf("expected paletted image converted to RGBA")
	}
}

func TestEncodeDecode_JPEGRoundTrip(t *testing.T) {
	data, err := Encode(gradient(64, 48), FormatJPEG, 85)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("expected 64x48 got %v", b)
	}
}

func TestEncodeTo_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeTo(&buf, gradient(2, 2), Format("ico"), 0)
	var encErr *EncodeError
	if !errors.As(err, &encErr) || !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected EncodeError wrapping ErrUnsupportedFormat got %v", err)
	}
}

func TestDecode_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	var decErr *DecodeError
	if _, err := Decode(filepath.Join(dir, "missing.png")); !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError for missing file got %v", err)
	}
	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bad); !errors.As(err, &decErr) || decErr.Path != bad {
		t.Fatalf("expected DecodeError with path got %v", err)
	}
}

func TestResize_ValidatesSize(t *testing.T) {
	if _, err := Resize(gradient(10, 10), 0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize got %v", err)
	}
	out, err := Resize(gradient(10, 10), 5, 3)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("expected 5x3 got %v", b)
	}
}

func TestCrop_BoundsChecked(t *testing.T) {
	src := gradient(40, 30)
	out, err := Crop(src, image.Rect(10, 5, 30, 25))
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("expected 20x20 got %v", b)
	}
	r, g, _, _ := out.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 5 {
		t.Fatalf("expected crop origin pixel (10,5) got r=%d g=%d", r>>8, g>>8)
	}
	if _, err := Crop(src, image.Rect(10, 5, 41, 25)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds got %v", err)
	}
}

func TestSaveImage_WritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	n, err := SaveImage(path, gradient(8, 8), 0)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() != int64(n) {
		t.Fatalf("expected %d bytes on disk, stat=%v err=%v", n, fi, err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestOutputName(t *testing.T) {
	src := filepath.Join("photos", "cat.png")
	if got, want := OutputName(src, "cropped_", ""), filepath.Join("photos", "cropped_cat.png"); got != want {
		t.Fatalf("expected %s got %s", want, got)
	}
	if got, want := OutputName(src, "compressed_", ".jpg"), filepath.Join("photos", "compressed_cat.jpg"); got != want {
		t.Fatalf("expected %s got %s", want, got)
	}
}
