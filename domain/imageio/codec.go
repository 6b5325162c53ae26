// Package imageio wraps the image codec primitives used by every image
// operation: decoding from disk, resampling, cropping, color normalization and
// encoding to buffers or files.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	// Registers the pure-Go WebP decoder with image.Decode.
	_ "golang.org/x/image/webp"
)

// Format names an output encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

// DefaultQuality is the lossy quality used when callers pass zero.
const DefaultQuality = 85

var extFormats = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWebP,
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Decode reads and decodes the image at path, honoring EXIF orientation.
func Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image. Registered decoders are tried first;
// libwebp is the fallback for WebP variants the pure-Go decoder rejects.
func DecodeBytes(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if wimg, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return wimg, nil
	}
	return nil, err
}

// EncodeTo writes img to w in format f. quality applies to JPEG and WebP.
func EncodeTo(w io.Writer, img image.Image, f Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var err error
	switch f {
	case FormatJPEG:
		err = imaging.Encode(w, ToRGB(img), imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
	case FormatBMP:
		err = imaging.Encode(w, img, imaging.BMP)
	case FormatGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case FormatTIFF:
		err = imaging.Encode(w, img, imaging.TIFF)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return &EncodeError{Format: f, Err: err}
	}
	return nil
}

// Encode returns img encoded in format f.
func Encode(img image.Image, f Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEGEncoder encodes at a fixed quality. It satisfies compress.Encoder.
type JPEGEncoder struct{ Quality int }

func (e JPEGEncoder) Encode(w io.Writer, img image.Image) error {
	return EncodeTo(w, img, FormatJPEG, e.Quality)
}

// Lanczos resamples img to exactly w x h.
func Lanczos(img image.Image, w, h int) image.Image {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Resize validates the target size and resamples with Lanczos.
func Resize(img image.Image, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return Lanczos(img, w, h), nil
}

// Crop returns a copy of the r region of img. r is relative to the image origin.
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	b := img.Bounds()
	abs := r.Add(b.Min)
	if r.Empty() || !abs.In(b) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, b.Sub(b.Min))
	}
	return imaging.Crop(img, abs), nil
}

// ToRGB returns an opaque version of img suitable for JPEG. Alpha is flattened
// onto white and palettes are expanded. Opaque non-paletted images pass through.
func ToRGB(img image.Image) image.Image {
	switch img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return img
	case *image.Paletted:
	default:
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			return img
		}
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
