package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/soocke/pdfimg-tool/app"
	"github.com/soocke/pdfimg-tool/debug"
	"github.com/soocke/pdfimg-tool/domain/imageio"
	"github.com/soocke/pdfimg-tool/domain/imageops"
	"github.com/soocke/pdfimg-tool/domain/pdf"
)

var errBadRect = errors.New("rect must be x,y,width,height with positive width and height")

func outOrDefault(out, src, prefix, ext string) string {
	if out != "" {
		return out
	}
	return imageio.OutputName(src, prefix, ext)
}

func printReport(rep imageops.Report) {
	fmt.Printf("%s: %d x %d, %d bytes -> %s: %d x %d, %d bytes (%.1f%%)\n",
		rep.Src, rep.SrcW, rep.SrcH, rep.SrcBytes, rep.Out, rep.OutW, rep.OutH, rep.OutBytes, rep.Reduction())
}

type cropCmd struct {
	Src  string `arg:"" type:"existingfile" help:"Source image."`
	Rect []int  `required:"" sep:"," help:"Crop rectangle in source pixels: x,y,width,height."`
	Out  string `short:"o" help:"Output path (default cropped_<name>)."`
}

func (cmd *cropCmd) Run(e *env) error {
	r, err := rectFromFlag(cmd.Rect)
	if err != nil {
		return err
	}
	rep, err := app.NewImageService(e.cfg, e.logger).Crop(cmd.Src, r, outOrDefault(cmd.Out, cmd.Src, "cropped_", ""))
	if err != nil {
		return err
	}
	printReport(rep)
	debug.LogSnapshot(e.logger, "crop")
	return nil
}

func rectFromFlag(v []int) (image.Rectangle, error) {
	if len(v) != 4 || v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, errBadRect
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

type compressCmd struct {
	Src      string `arg:"" type:"existingfile" help:"Source image."`
	TargetKB int    `name:"target-kb" help:"Target size in KB (default: half the source, at least 10)."`
	Out      string `short:"o" help:"Output path (default compressed_<name>.jpg)."`
}

func (cmd *compressCmd) Run(e *env) error {
	svc := app.NewImageService(e.cfg, e.logger)
	target := cmd.TargetKB
	if target == 0 {
		_, size, err := svc.Load(cmd.Src)
		if err != nil {
			return err
		}
		target = e.cfg.DefaultTargetKB(size)
	}
	rep, err := svc.Compress(e.ctx, cmd.Src, target, outOrDefault(cmd.Out, cmd.Src, "compressed_", ".jpg"))
	if err != nil {
		return err
	}
	printReport(rep)
	if rep.Unreachable {
		fmt.Printf("warning: %d KB could not be reached, kept the smallest result\n", target)
	}
	debug.LogSnapshot(e.logger, "compress")
	return nil
}

type resizeCmd struct {
	Src    string `arg:"" type:"existingfile" help:"Source image."`
	Width  int    `short:"W" help:"New width (derived from height when 0)."`
	Height int    `short:"H" help:"New height (derived from width when 0)."`
	Out    string `short:"o" help:"Output path (default resized_<name>)."`
}

func (cmd *resizeCmd) Run(e *env) error {
	svc := app.NewImageService(e.cfg, e.logger)
	w, h := cmd.Width, cmd.Height
	if w <= 0 || h <= 0 {
		img, _, err := svc.Load(cmd.Src)
		if err != nil {
			return err
		}
		b := img.Bounds()
		switch {
		case w > 0:
			h = w * b.Dy() / b.Dx()
		case h > 0:
			w = h * b.Dx() / b.Dy()
		default:
			return imageio.ErrInvalidSize
		}
	}
	rep, err := svc.Resize(cmd.Src, w, h, outOrDefault(cmd.Out, cmd.Src, "resized_", ""))
	if err != nil {
		return err
	}
	printReport(rep)
	return nil
}

type mergeCmd struct {
	Inputs []string `arg:"" type:"existingfile" help:"PDFs in output order."`
	Out    string   `short:"o" default:"merged.pdf" help:"Output PDF."`
}

func (cmd *mergeCmd) Run(e *env) error {
	if err := pdf.NewService(e.logger, e.cfg.Workers).Merge(cmd.Inputs, cmd.Out); err != nil {
		return err
	}
	fmt.Printf("merged %d PDFs into %s\n", len(cmd.Inputs), cmd.Out)
	return nil
}

type splitCmd struct {
	Src    string `arg:"" type:"existingfile" help:"Source PDF."`
	Ranges string `required:"" help:"Pages to keep, e.g. \"1-3, 5, 7-9\"."`
	Out    string `short:"o" help:"Output PDF (default split_<name>)."`
}

func (cmd *splitCmd) Run(e *env) error {
	svc := pdf.NewService(e.logger, e.cfg.Workers)
	ranges, err := pdf.ParseRanges(cmd.Ranges)
	if err != nil {
		return err
	}
	pages, err := svc.PageCount(cmd.Src)
	if err != nil {
		return err
	}
	if err := pdf.ValidateRanges(ranges, pages); err != nil {
		return err
	}
	out := outOrDefault(cmd.Out, cmd.Src, "split_", "")
	n, err := svc.Split(cmd.Src, ranges, out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d pages (%s) to %s\n", n, pdf.FormatRanges(ranges), out)
	return nil
}

type toPDFCmd struct {
	Images []string `arg:"" type:"existingfile" help:"Images in page order."`
	Out    string   `short:"o" default:"images.pdf" help:"Output PDF."`
}

func (cmd *toPDFCmd) Run(e *env) error {
	if err := pdf.NewService(e.logger, e.cfg.Workers).ImagesToPDF(e.ctx, cmd.Images, cmd.Out); err != nil {
		return err
	}
	fmt.Printf("created %s from %d image(s)\n", cmd.Out, len(cmd.Images))
	debug.LogSnapshot(e.logger, "topdf")
	return nil
}

type lockCmd struct {
	Src      string `arg:"" type:"existingfile" help:"Source PDF."`
	Password string `required:"" env:"PDFIMG_PASSWORD" help:"User password."`
	Out      string `short:"o" help:"Output PDF (default locked_<name>)."`
}

func (cmd *lockCmd) Run(e *env) error {
	out := outOrDefault(cmd.Out, cmd.Src, "locked_", "")
	if err := pdf.NewService(e.logger, e.cfg.Workers).Lock(cmd.Src, out, cmd.Password, cmd.Password); err != nil {
		return err
	}
	fmt.Println("locked", filepath.Base(cmd.Src), "->", out)
	return nil
}

type unlockCmd struct {
	Src      string `arg:"" type:"existingfile" help:"Source PDF."`
	Password string `required:"" env:"PDFIMG_PASSWORD" help:"Current password."`
	Out      string `short:"o" help:"Output PDF (default unlocked_<name>)."`
}

func (cmd *unlockCmd) Run(e *env) error {
	out := outOrDefault(cmd.Out, cmd.Src, "unlocked_", "")
	err := pdf.NewService(e.logger, e.cfg.Workers).Unlock(cmd.Src, out, cmd.Password)
	if errors.Is(err, pdf.ErrNotEncrypted) {
		fmt.Println(filepath.Base(cmd.Src), "is not password-protected")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("unlocked", filepath.Base(cmd.Src), "->", out)
	return nil
}

type pagesCmd struct {
	Src string `arg:"" type:"existingfile" help:"PDF file."`
}

func (cmd *pagesCmd) Run(e *env) error {
	n, err := pdf.NewService(e.logger, e.cfg.Workers).PageCount(cmd.Src)
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}
