// Package imageops implements the file-to-file image operations behind the
// launcher and the command line: crop, resize and compress to a target size.
package imageops

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/soocke/pdfimg-tool/domain/compress"
	"github.com/soocke/pdfimg-tool/domain/imageio"
)

// Report describes one completed operation.
type Report struct {
	Src, Out    string
	SrcW, SrcH  int
	OutW, OutH  int
	SrcBytes    int64
	OutBytes    int64
	Unreachable bool // compress only: the output is larger than the target
}

// Reduction is the size saving in percent of the source file.
func (r Report) Reduction() float64 {
	if r.SrcBytes <= 0 {
		return 0
	}
	return float64(r.SrcBytes-r.OutBytes) / float64(r.SrcBytes) * 100
}

// Service runs image operations against files.
type Service struct {
	compressor *compress.Compressor
	quality    int
	logger     *slog.Logger
}

// NewService returns a Service saving lossy outputs at quality. A nil
// compressor uses JPEG quality 85 with the default search options.
func NewService(c *compress.Compressor, quality int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c == nil {
		c = compress.New(imageio.JPEGEncoder{Quality: imageio.DefaultQuality}, nil, compress.DefaultOptions(), logger)
	}
	return &Service{compressor: c, quality: quality, logger: logger}
}

// Load decodes path and reports its size on disk.
func (s *Service) Load(path string) (image.Image, int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, 0, &imageio.DecodeError{Path: path, Err: err}
	}
	img, err := imageio.Decode(path)
	if err != nil {
		return nil, 0, err
	}
	return img, fi.Size(), nil
}

// Crop cuts r (source pixels) out of the image at src and saves it to out in
// the format implied by out's extension.
func (s *Service) Crop(src string, r image.Rectangle, out string) (Report, error) {
	img, size, err := s.Load(src)
	if err != nil {
		return Report{}, err
	}
	rep, err := s.CropImage(img, r, out)
	rep.Src, rep.SrcBytes = src, size
	return rep, err
}

// CropImage is Crop for an image already in memory, such as a screenshot.
func (s *Service) CropImage(img image.Image, r image.Rectangle, out string) (Report, error) {
	b := img.Bounds()
	rep := Report{Out: out, SrcW: b.Dx(), SrcH: b.Dy()}
	cropped, err := imageio.Crop(img, r)
	if err != nil {
		return rep, err
	}
	n, err := imageio.SaveImage(out, cropped, s.quality)
	if err != nil {
		return rep, fmt.Errorf("save %s: %w", out, err)
	}
	rep.OutW, rep.OutH, rep.OutBytes = r.Dx(), r.Dy(), int64(n)
	s.logger.Info("image cropped", "out", out, "rect", r.String(), "bytes", n)
	return rep, nil
}

// Resize scales the image at src to exactly w x h with Lanczos resampling.
// Alpha is flattened when out is a JPEG.
func (s *Service) Resize(src string, w, h int, out string) (Report, error) {
	img, size, err := s.Load(src)
	if err != nil {
		return Report{}, err
	}
	b := img.Bounds()
	rep := Report{Src: src, Out: out, SrcW: b.Dx(), SrcH: b.Dy(), SrcBytes: size}
	resized, err := imageio.Resize(img, w, h)
	if err != nil {
		return rep, err
	}
	n, err := imageio.SaveImage(out, resized, s.quality)
	if err != nil {
		return rep, fmt.Errorf("save %s: %w", out, err)
	}
	rep.OutW, rep.OutH, rep.OutBytes = w, h, int64(n)
	s.logger.Info("image resized", "out", out, "width", w, "height", h, "bytes", n)
	return rep, nil
}

// Compress writes the largest JPEG rendition of src that fits targetKB
// kilobytes (1 KB = 1024 bytes). The output is JPEG whatever out's extension.
// An unreachable target still writes the smallest candidate and sets
// Report.Unreachable.
func (s *Service) Compress(ctx context.Context, src string, targetKB int, out string) (Report, error) {
	if targetKB <= 0 {
		return Report{}, fmt.Errorf("%w: %d KB", compress.ErrInvalidTarget, targetKB)
	}
	img, size, err := s.Load(src)
	if err != nil {
		return Report{}, err
	}
	b := img.Bounds()
	rep := Report{Src: src, Out: out, SrcW: b.Dx(), SrcH: b.Dy(), SrcBytes: size}
	res, err := s.compressor.Compress(ctx, img, targetKB*1024)
	if err != nil {
		return rep, err
	}
	if err := imageio.WriteFile(out, res.Data); err != nil {
		return rep, fmt.Errorf("save %s: %w", out, err)
	}
	rep.OutW, rep.OutH, rep.OutBytes = res.Width, res.Height, int64(res.Size)
	rep.Unreachable = res.Unreachable
	s.logger.Info("image compressed",
		"out", out, "target_kb", targetKB, "bytes", res.Size,
		"width", res.Width, "height", res.Height, "trials", len(res.Trials), "unreachable", res.Unreachable)
	return rep, nil
}
