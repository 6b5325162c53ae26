package imageio

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// WriteFile stores data at path through a sibling temp file and a rename, so a
// failed write never leaves a truncated output behind.
func WriteFile(path string, data []byte) error {
	tmp := TempSibling(path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// TempSibling returns a unique hidden path in the same directory as path.
func TempSibling(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// SaveImage encodes img in the format implied by path and writes it.
// It returns the number of bytes written.
func SaveImage(path string, img image.Image, quality int) (int, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	data, err := Encode(img, f, quality)
	if err != nil {
		return 0, err
	}
	if err := WriteFile(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// OutputName builds the default save name for src: prefix + base name, with
// the extension replaced when ext is not empty.
func OutputName(src, prefix, ext string) string {
	dir, base := filepath.Split(src)
	if ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}
	return filepath.Join(dir, prefix+base)
}
