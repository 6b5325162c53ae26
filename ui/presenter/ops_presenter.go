package presenter

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/pdfimg-tool/config"
	"github.com/soocke/pdfimg-tool/domain/capture"
	"github.com/soocke/pdfimg-tool/domain/crop"
	"github.com/soocke/pdfimg-tool/domain/imageio"
	"github.com/soocke/pdfimg-tool/domain/imageops"
	"github.com/soocke/pdfimg-tool/domain/pdf"
)

// FileKind selects the filters offered by a file dialog.
type FileKind int

const (
	KindImage FileKind = iota
	KindPDF
	KindJPEG
)

// Dialogs are the native file pickers. Empty results mean the user cancelled.
type Dialogs interface {
	OpenFiles(title string, kind FileKind, multiple bool) []string
	SaveFile(title, initial string, kind FileKind) string
}

// ResizeForm describes the resize dialog.
type ResizeForm struct {
	Name          string
	Width, Height int
}

// CompressForm describes the compress dialog.
type CompressForm struct {
	Name          string
	Width, Height int
	SizeBytes     int64
	DefaultKB     int
}

// SplitForm describes the page range dialog.
type SplitForm struct {
	Name  string
	Pages int
}

// PasswordForm describes the lock and unlock dialogs. Confirm asks for the
// password twice.
type PasswordForm struct {
	Title   string
	Name    string
	Confirm bool
}

// Forms collect operation parameters. Each submit callback returns true when
// the input was accepted and the form may close.
type Forms interface {
	AskResize(f ResizeForm, submit func(w, h string) bool)
	AskCompress(f CompressForm, submit func(targetKB string) bool)
	AskRanges(f SplitForm, submit func(ranges string) bool)
	AskPassword(f PasswordForm, submit func(password, confirm string) bool)
	OpenCrop(p *CropPresenter)
}

// ImageOps is the image side of the domain.
type ImageOps interface {
	Load(path string) (image.Image, int64, error)
	Crop(src string, r image.Rectangle, out string) (imageops.Report, error)
	CropImage(img image.Image, r image.Rectangle, out string) (imageops.Report, error)
	Resize(src string, w, h int, out string) (imageops.Report, error)
	Compress(ctx context.Context, src string, targetKB int, out string) (imageops.Report, error)
}

// PDFOps is the document side of the domain.
type PDFOps interface {
	PageCount(path string) (int, error)
	Merge(inputs []string, out string) error
	Split(in string, ranges []pdf.PageRange, out string) (int, error)
	ImagesToPDF(ctx context.Context, images []string, out string) error
	Lock(in, out, password, confirm string) error
	Unlock(in, out, password string) error
}

// OpsPresenter implements the launcher actions: it asks for files and
// parameters, validates them and hands the work to the JobRunner.
type OpsPresenter struct {
	images  ImageOps
	docs    PDFOps
	screen  capture.Source
	runner  *JobRunner
	dialogs Dialogs
	forms   Forms
	cfg     *config.Config
	logger  *slog.Logger
}

func NewOpsPresenter(images ImageOps, docs PDFOps, screen capture.Source, runner *JobRunner, dialogs Dialogs, forms Forms, cfg *config.Config, logger *slog.Logger) *OpsPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpsPresenter{images: images, docs: docs, screen: screen, runner: runner, dialogs: dialogs, forms: forms, cfg: cfg, logger: logger}
}

func (p *OpsPresenter) cropOptions() crop.Options {
	return crop.Options{
		HandleSize:    p.cfg.HandleSize,
		EdgeTolerance: p.cfg.EdgeTolerance,
		MinSize:       p.cfg.MinSelection,
		MaxDisplayW:   p.cfg.PreviewMaxW,
		MaxDisplayH:   p.cfg.PreviewMaxH,
	}
}

func (p *OpsPresenter) openOne(title string, kind FileKind) string {
	files := p.dialogs.OpenFiles(title, kind, false)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// MergePDFs concatenates the selected PDFs in selection order.
func (p *OpsPresenter) MergePDFs() {
	files := p.dialogs.OpenFiles("Select PDF files to merge", KindPDF, true)
	if len(files) == 0 {
		return
	}
	out := p.dialogs.SaveFile("Save merged PDF as", "merged.pdf", KindPDF)
	if out == "" {
		return
	}
	p.runner.Run("merge", "Failed to merge PDFs.", func(ctx context.Context) (string, error) {
		if err := p.docs.Merge(files, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Merged %d PDFs into:\n%s", len(files), out), nil
	})
}

// SplitPDF extracts page ranges from one PDF into a new one.
func (p *OpsPresenter) SplitPDF() {
	in := p.openOne("Select a PDF file to split", KindPDF)
	if in == "" {
		return
	}
	pages, err := p.docs.PageCount(in)
	if err != nil {
		p.runner.Report("Failed to open PDF.", err)
		return
	}
	name := filepath.Base(in)
	p.forms.AskRanges(SplitForm{Name: name, Pages: pages}, func(text string) bool {
		ranges, err := pdf.ParseRanges(text)
		if err == nil {
			err = pdf.ValidateRanges(ranges, pages)
		}
		if err != nil {
			p.runner.Report("Invalid page ranges.", err)
			return false
		}
		out := p.dialogs.SaveFile("Save split PDF as", "split_"+name, KindPDF)
		if out == "" {
			return false
		}
		return p.runner.Run("split", "Failed to split PDF.", func(ctx context.Context) (string, error) {
			n, err := p.docs.Split(in, ranges, out)
			if err != nil {
				return "", err
			}
			return splitMessage(ranges, n, out), nil
		})
	})
}

// ImagesToPDF builds one PDF page per selected image.
func (p *OpsPresenter) ImagesToPDF() {
	files := p.dialogs.OpenFiles("Select image files (JPG/PNG) to convert", KindImage, true)
	if len(files) == 0 {
		return
	}
	out := p.dialogs.SaveFile("Save PDF as", "images.pdf", KindPDF)
	if out == "" {
		return
	}
	p.runner.Run("images to pdf", "Failed to create PDF.", func(ctx context.Context) (string, error) {
		if err := p.docs.ImagesToPDF(ctx, files, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created PDF from %d image(s):\n%s", len(files), out), nil
	})
}

// LockPDF encrypts a PDF with a confirmed password.
func (p *OpsPresenter) LockPDF() {
	in := p.openOne("Select a PDF file to lock", KindPDF)
	if in == "" {
		return
	}
	name := filepath.Base(in)
	p.forms.AskPassword(PasswordForm{Title: "Lock PDF", Name: name, Confirm: true}, func(pw, confirm string) bool {
		switch {
		case pw == "":
			p.runner.Report("", pdf.ErrEmptyPassword)
			return false
		case pw != confirm:
			p.runner.Report("", pdf.ErrPasswordMismatch)
			return false
		}
		out := p.dialogs.SaveFile("Save locked PDF as", "locked_"+name, KindPDF)
		if out == "" {
			return false
		}
		return p.runner.Run("lock", "Failed to lock PDF.", func(ctx context.Context) (string, error) {
			if err := p.docs.Lock(in, out, pw, confirm); err != nil {
				return "", err
			}
			return "PDF locked successfully with password!\n\nSaved to:\n" + out, nil
		})
	})
}

// UnlockPDF removes the password from a protected PDF.
func (p *OpsPresenter) UnlockPDF() {
	in := p.openOne("Select a password-protected PDF to unlock", KindPDF)
	if in == "" {
		return
	}
	name := filepath.Base(in)
	p.forms.AskPassword(PasswordForm{Title: "Unlock PDF", Name: name}, func(pw, _ string) bool {
		if pw == "" {
			p.runner.Report("", pdf.ErrEmptyPassword)
			return false
		}
		out := p.dialogs.SaveFile("Save unlocked PDF as", "unlocked_"+name, KindPDF)
		if out == "" {
			return false
		}
		return p.runner.Run("unlock", "Failed to unlock PDF.", func(ctx context.Context) (string, error) {
			if err := p.docs.Unlock(in, out, pw); err != nil {
				return "", err
			}
			return "PDF unlocked successfully!\n\nSaved to:\n" + out, nil
		})
	})
}

// ResizeImage scales an image to the entered width and height.
func (p *OpsPresenter) ResizeImage() {
	in := p.openOne("Select an image to resize", KindImage)
	if in == "" {
		return
	}
	p.loadImage(in, func(img image.Image, _ int64) {
		p.askResize(in, img.Bounds())
	})
}

// loadImage decodes path off the UI thread and hands the image to next on
// the UI thread. Failures are reported and next is skipped.
func (p *OpsPresenter) loadImage(path string, next func(img image.Image, size int64)) {
	var (
		img  image.Image
		size int64
	)
	p.runner.Go("open image", func(ctx context.Context) error {
		var err error
		img, size, err = p.images.Load(path)
		return err
	}, func(err error) {
		if err != nil {
			p.runner.Report("Failed to open image.", err)
			return
		}
		next(img, size)
	})
}

func (p *OpsPresenter) askResize(in string, b image.Rectangle) {
	name := filepath.Base(in)
	p.forms.AskResize(ResizeForm{Name: name, Width: b.Dx(), Height: b.Dy()}, func(ws, hs string) bool {
		w, errW := strconv.Atoi(strings.TrimSpace(ws))
		h, errH := strconv.Atoi(strings.TrimSpace(hs))
		if errW != nil || errH != nil {
			p.runner.notifyError("Please enter valid numeric values for width and height.")
			return false
		}
		if w <= 0 || h <= 0 {
			p.runner.Report("", imageio.ErrInvalidSize)
			return false
		}
		out := p.dialogs.SaveFile("Save resized image as", "resized_"+name, KindImage)
		if out == "" {
			return false
		}
		return p.runner.Run("resize", "Failed to resize image.", func(ctx context.Context) (string, error) {
			rep, err := p.images.Resize(in, w, h, out)
			if err != nil {
				return "", err
			}
			return resizeMessage(rep), nil
		})
	})
}

// AspectHeight returns the height that keeps a srcW x srcH image's
// proportions at width w.
func AspectHeight(w, srcW, srcH int) int {
	if srcW <= 0 {
		return 0
	}
	return w * srcH / srcW
}

// CompressImage shrinks an image until its JPEG encoding fits a target size.
func (p *OpsPresenter) CompressImage() {
	in := p.openOne("Select an image to compress", KindImage)
	if in == "" {
		return
	}
	p.loadImage(in, func(img image.Image, size int64) {
		p.askCompress(in, img.Bounds(), size)
	})
}

func (p *OpsPresenter) askCompress(in string, b image.Rectangle, size int64) {
	name := filepath.Base(in)
	form := CompressForm{Name: name, Width: b.Dx(), Height: b.Dy(), SizeBytes: size, DefaultKB: p.cfg.DefaultTargetKB(size)}
	p.forms.AskCompress(form, func(text string) bool {
		target, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			p.runner.notifyError("Please enter a valid numeric value for target size.")
			return false
		}
		if target <= 0 {
			p.runner.notifyError("Target size must be a positive number.")
			return false
		}
		initial := imageio.OutputName(name, "compressed_", ".jpg")
		out := p.dialogs.SaveFile("Save compressed image as", initial, KindJPEG)
		if out == "" {
			return false
		}
		return p.runner.Run("compress", "Failed to compress image.", func(ctx context.Context) (string, error) {
			rep, err := p.images.Compress(ctx, in, target, out)
			if err != nil {
				return "", err
			}
			return compressMessage(rep, target), nil
		})
	})
}

// CropImage opens the interactive crop dialog for an image file.
func (p *OpsPresenter) CropImage() {
	in := p.openOne("Select an image to crop", KindImage)
	if in == "" {
		return
	}
	p.loadImage(in, func(img image.Image, _ int64) {
		p.openCrop(filepath.Base(in), img, func(r image.Rectangle, out string) (imageops.Report, error) {
			return p.images.Crop(in, r, out)
		})
	})
}

// CropScreenshot captures the screen and opens the crop dialog over it.
func (p *OpsPresenter) CropScreenshot() {
	if p.screen == nil {
		return
	}
	var shot image.Image
	p.runner.Go("screenshot", func(ctx context.Context) error {
		img, err := p.screen.Grab(ctx)
		shot = img
		return err
	}, func(err error) {
		if err != nil {
			p.runner.Report("Failed to capture the screen.", err)
			return
		}
		p.openCrop("screenshot.png", shot, func(r image.Rectangle, out string) (imageops.Report, error) {
			return p.images.CropImage(shot, r, out)
		})
	})
}

func (p *OpsPresenter) openCrop(name string, img image.Image, save func(r image.Rectangle, out string) (imageops.Report, error)) {
	cp, err := NewCropPresenter(name, img, p.cropOptions())
	if err != nil {
		p.runner.Report("Failed to open image.", err)
		return
	}
	cp.OnConfirm = func(r image.Rectangle) bool {
		out := p.dialogs.SaveFile("Save cropped image as", "cropped_"+name, KindImage)
		if out == "" {
			return false
		}
		return p.runner.Run("crop", "Failed to save cropped image.", func(ctx context.Context) (string, error) {
			rep, err := save(r, out)
			if err != nil {
				return "", err
			}
			return cropMessage(rep), nil
		})
	}
	p.forms.OpenCrop(cp)
}
