// Package pdf implements the document operations: merge, split by page ranges,
// images to PDF, and password protection. pdfcpu does the format work; this
// package adds validation, typed errors and crash-safe output files.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sourcegraph/conc/pool"

	"github.com/soocke/pdfimg-tool/domain/imageio"
)

var (
	ErrNoInput          = errors.New("pdf: no input files")
	ErrInvalidRange     = errors.New("pdf: invalid page range")
	ErrEmptyPassword    = errors.New("pdf: password cannot be empty")
	ErrPasswordMismatch = errors.New("pdf: passwords do not match")
	ErrNotEncrypted     = errors.New("pdf: file is not password protected")
	ErrWrongPassword    = errors.New("pdf: incorrect password")
)

// AESKeyLength is the key size used by Lock.
const AESKeyLength = 256

var disableConfigDir sync.Once

// Service runs document operations. The zero value is not usable; call NewService.
type Service struct {
	logger  *slog.Logger
	workers int
}

// NewService returns a Service. workers bounds concurrent image normalization
// in ImagesToPDF; values < 1 use the CPU count.
func NewService(logger *slog.Logger, workers int) *Service {
	// pdfcpu would otherwise create a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Service{logger: logger, workers: workers}
}

func (s *Service) conf() *model.Configuration { return model.NewDefaultConfiguration() }

// PageCount returns the number of pages in path.
func (s *Service) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// Merge concatenates inputs, in order, into out.
func (s *Service) Merge(inputs []string, out string) error {
	if len(inputs) == 0 {
		return ErrNoInput
	}
	err := writeVia(out, func(tmp string) error {
		return api.MergeCreateFile(inputs, tmp, false, s.conf())
	})
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	s.logger.Info("merged pdfs", "inputs", len(inputs), "output", out)
	return nil
}

// Split writes the pages selected by ranges, in range order, to a single PDF.
// It returns the number of pages written.
func (s *Service) Split(in string, ranges []PageRange, out string) (int, error) {
	total, err := s.PageCount(in)
	if err != nil {
		return 0, err
	}
	if err := ValidateRanges(ranges, total); err != nil {
		return 0, err
	}
	selected := make([]string, len(ranges))
	for i, r := range ranges {
		selected[i] = r.String()
	}
	err = writeVia(out, func(tmp string) error {
		return api.CollectFile(in, tmp, selected, s.conf())
	})
	if err != nil {
		return 0, fmt.Errorf("split: %w", err)
	}
	n := TotalPages(ranges)
	s.logger.Info("split pdf", "input", in, "ranges", FormatRanges(ranges), "pages", n, "output", out)
	return n, nil
}

// ImagesToPDF writes one page per image, in order. Non-JPEG inputs are decoded
// and flattened to opaque PNG first so alpha and palettes never reach the PDF.
func (s *Service) ImagesToPDF(ctx context.Context, images []string, out string) error {
	if len(images) == 0 {
		return ErrNoInput
	}
	tmpDir, err := os.MkdirTemp("", "pdfimg-pages-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	pages := make([]string, len(images))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(s.workers)
	for i, path := range images {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if f, _ := imageio.FormatFromPath(path); f == imageio.FormatJPEG {
				pages[i] = path
				return nil
			}
			img, err := imageio.Decode(path)
			if err != nil {
				return err
			}
			page := filepath.Join(tmpDir, fmt.Sprintf("page-%04d.png", i))
			if _, err := imageio.SaveImage(page, imageio.ToRGB(img), 0); err != nil {
				return fmt.Errorf("normalize %s: %w", filepath.Base(path), err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	err = writeVia(out, func(tmp string) error {
		return api.ImportImagesFile(pages, tmp, nil, s.conf())
	})
	if err != nil {
		return fmt.Errorf("images to pdf: %w", err)
	}
	s.logger.Info("created pdf from images", "images", len(images), "output", out)
	return nil
}

// Lock encrypts in with password (AES-256) and writes out. confirm must match.
func (s *Service) Lock(in, out, password, confirm string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	conf := model.NewAESConfiguration(password, password, AESKeyLength)
	err := writeVia(out, func(tmp string) error {
		return api.EncryptFile(in, tmp, conf)
	})
	if err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	s.logger.Info("locked pdf", "input", in, "output", out)
	return nil
}

// Unlock removes password protection from in and writes out.
func (s *Service) Unlock(in, out, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	conf := s.conf()
	conf.UserPW = password
	conf.OwnerPW = password
	err := writeVia(out, func(tmp string) error {
		return api.DecryptFile(in, tmp, conf)
	})
	if err != nil {
		return classifyDecrypt(err)
	}
	s.logger.Info("unlocked pdf", "input", in, "output", out)
	return nil
}

// classifyDecrypt maps pdfcpu's decrypt failures onto the package errors.
func classifyDecrypt(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not encrypted"):
		return ErrNotEncrypted
	case strings.Contains(msg, "password"):
		return fmt.Errorf("%w: %v", ErrWrongPassword, err)
	}
	return fmt.Errorf("unlock: %w", err)
}

// writeVia lets fn produce a sibling temp file and renames it over out.
// pdfcpu appends to existing files in some operations, so fn always starts
// from a path that does not exist.
func writeVia(out string, fn func(tmp string) error) error {
	tmp := imageio.TempSibling(out)
	if err := fn(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
