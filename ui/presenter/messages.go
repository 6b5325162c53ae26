package presenter

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/soocke/pdfimg-tool/domain/compress"
	"github.com/soocke/pdfimg-tool/domain/imageio"
	"github.com/soocke/pdfimg-tool/domain/imageops"
	"github.com/soocke/pdfimg-tool/domain/pdf"
)

// describe maps domain errors to dialog text. known reports whether the text
// stands on its own; info marks outcomes that are not failures.
func describe(err error) (text string, known, info bool) {
	switch {
	case errors.Is(err, pdf.ErrNotEncrypted):
		return "This PDF is not password-protected.\nNo unlocking needed.", true, true
	case errors.Is(err, pdf.ErrWrongPassword):
		return "Incorrect password. Please try again.", true, false
	case errors.Is(err, pdf.ErrEmptyPassword):
		return "Password cannot be empty.", true, false
	case errors.Is(err, pdf.ErrPasswordMismatch):
		return "Passwords do not match.", true, false
	case errors.Is(err, pdf.ErrInvalidRange):
		return sentence(strings.TrimPrefix(err.Error(), pdf.ErrInvalidRange.Error()+": ")), true, false
	case errors.Is(err, pdf.ErrNoInput):
		return "Please select at least one file.", true, false
	case errors.Is(err, imageio.ErrInvalidSize):
		return "Width and height must be positive numbers.", true, false
	case errors.Is(err, compress.ErrInvalidTarget):
		return "Target size must be a positive number.", true, false
	}
	return err.Error(), false, false
}

// sentence capitalizes s and ends it with a period.
func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	s = string(r)
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func kb(n int64) float64 { return float64(n) / 1024 }

func cropMessage(rep imageops.Report) string {
	return fmt.Sprintf("Image cropped successfully!\n\nOriginal: %d x %d\nCropped: %d x %d\n\nSaved to:\n%s",
		rep.SrcW, rep.SrcH, rep.OutW, rep.OutH, rep.Out)
}

func resizeMessage(rep imageops.Report) string {
	return fmt.Sprintf("Image resized successfully!\n\nOriginal: %d x %d\nNew: %d x %d\n\nSaved to:\n%s",
		rep.SrcW, rep.SrcH, rep.OutW, rep.OutH, rep.Out)
}

func compressMessage(rep imageops.Report, targetKB int) string {
	head := "Image compressed successfully!"
	if rep.Unreachable {
		head = fmt.Sprintf("Could not reach %d KB; saved the smallest version found.", targetKB)
	}
	return fmt.Sprintf("%s\n\nOriginal: %.2f KB (%d x %d)\nCompressed: %.2f KB (%d x %d)\nReduction: %.1f%%\n\nSaved to:\n%s",
		head, kb(rep.SrcBytes), rep.SrcW, rep.SrcH, kb(rep.OutBytes), rep.OutW, rep.OutH, rep.Reduction(), rep.Out)
}

func splitMessage(ranges []pdf.PageRange, pages int, out string) string {
	return fmt.Sprintf("PDF split successfully!\n\nRanges: %s\nTotal pages in output: %d\n\nSaved to:\n%s",
		pdf.FormatRanges(ranges), pages, out)
}
