package pdf

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/soocke/pdfimg-tool/domain/imageio"
)

func writeImages(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
		for y := 0; y < 30; y++ {
			for x := 0; x < 40; x++ {
				img.SetNRGBA(x, y, color.NRGBA{uint8(i * 60), uint8(x * 6), uint8(y * 8), uint8(128 + i)})
			}
		}
		paths[i] = filepath.Join(dir, name)
		if _, err := imageio.SaveImage(paths[i], img, 90); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return paths
}

func buildPDF(t *testing.T, svc *Service, dir, name string, pages int) string {
	t.Helper()
	names := make([]string, pages)
	for i := range names {
		names[i] = filepath.Base(name) + "-" + string(rune('a'+i)) + ".png"
	}
	out := filepath.Join(dir, name)
	if err := svc.ImagesToPDF(context.Background(), writeImages(t, dir, names...), out); err != nil {
		t.Fatalf("images to pdf: %v", err)
	}
	return out
}

func pageCount(t *testing.T, svc *Service, path string) int {
	t.Helper()
	n, err := svc.PageCount(path)
	if err != nil {
		t.Fatalf("page count %s: %v", path, err)
	}
	return n
}

func TestService_ImagesToPDFOnePagePerImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, 2)
	imgs := writeImages(t, dir, "a.png", "b.jpg", "c.png")
	out := filepath.Join(dir, "images.pdf")
	if err := svc.ImagesToPDF(context.Background(), imgs, out); err != nil {
		t.Fatalf("images to pdf: %v", err)
	}
	if n := pageCount(t, svc, out); n != 3 {
		t.Fatalf("expected 3 pages got %d", n)
	}
}

func TestService_ImagesToPDFRejectsEmptyAndBadInput(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, 1)
	if err := svc.ImagesToPDF(context.Background(), nil, filepath.Join(dir, "x.pdf")); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput got %v", err)
	}
	err := svc.ImagesToPDF(context.Background(), []string{filepath.Join(dir, "missing.png")}, filepath.Join(dir, "x.pdf"))
	var decErr *imageio.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError got %v", err)
	}
}

func TestService_MergeAndSplit(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, 0)
	a := buildPDF(t, svc, dir, "a.pdf", 2)
	b := buildPDF(t, svc, dir, "b.pdf", 3)

	merged := filepath.Join(dir, "merged.pdf")
	if err := svc.Merge([]string{a, b}, merged); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if n := pageCount(t, svc, merged); n != 5 {
		t.Fatalf("expected 5 merged pages got %d", n)
	}

	split := filepath.Join(dir, "split.pdf")
	n, err := svc.Split(merged, []PageRange{{4, 5}, {1, 1}}, split)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if n != 3 || pageCount(t, svc, split) != 3 {
		t.Fatalf("expected 3 split pages got %d", n)
	}
	if _, err := svc.Split(merged, []PageRange{{1, 6}}, split); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange got %v", err)
	}
	if err := svc.Merge(nil, merged); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput got %v", err)
	}
}

func TestService_LockUnlock(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, 0)
	src := buildPDF(t, svc, dir, "doc.pdf", 1)
	locked := filepath.Join(dir, "locked_doc.pdf")

	if err := svc.Lock(src, locked, "", ""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword got %v", err)
	}
	if err := svc.Lock(src, locked, "secret", "secrte"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch got %v", err)
	}
	if err := svc.Lock(src, locked, "secret", "secret"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	unlocked := filepath.Join(dir, "unlocked_doc.pdf")
	if err := svc.Unlock(locked, unlocked, "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword got %v", err)
	}
	if err := svc.Unlock(locked, unlocked, "secret"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if n := pageCount(t, svc, unlocked); n != 1 {
		t.Fatalf("expected 1 page got %d", n)
	}
	if err := svc.Unlock(unlocked, filepath.Join(dir, "again.pdf"), "secret"); !errors.Is(err, ErrNotEncrypted) {
		t.Fatalf("expected ErrNotEncrypted got %v", err)
	}
}
