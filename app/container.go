package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/pdfimg-tool/config"
	"github.com/soocke/pdfimg-tool/domain/capture"
	"github.com/soocke/pdfimg-tool/domain/compress"
	"github.com/soocke/pdfimg-tool/domain/imageio"
	"github.com/soocke/pdfimg-tool/domain/imageops"
	"github.com/soocke/pdfimg-tool/domain/pdf"
	"github.com/soocke/pdfimg-tool/ui/model"
	"github.com/soocke/pdfimg-tool/ui/presenter"
	"github.com/soocke/pdfimg-tool/ui/view"
)

// screenshotDelay lets the launcher repaint before the screen is grabbed.
const screenshotDelay = 300 * time.Millisecond

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	// Services
	Images *imageops.Service
	Docs   *pdf.Service
	Screen capture.Source

	// Models
	Busy     *model.BusyModel
	Activity *model.ActivityModel

	// Views
	RootView *view.RootView
	Dialogs  *view.NativeDialogs
	Forms    *view.Forms

	// Presenters
	Loop   *presenter.Loop
	Status *presenter.StatusPresenter
	Runner *presenter.JobRunner
	Ops    *presenter.OpsPresenter
}

// BuildContainer constructs all components. No widgets are created here;
// the root view is built by the app once Tk is ready.
func BuildContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Images = NewImageService(cfg, logger)
	c.Docs = pdf.NewService(logger, cfg.Workers)
	c.Screen = capture.Screen{Delay: screenshotDelay, Logger: logger}

	c.Busy = &model.BusyModel{}
	c.Activity = model.NewActivityModel()

	c.RootView = view.NewRootView(logger)
	c.Dialogs = view.NewNativeDialogs(logger)
	c.Forms = view.NewForms(logger)

	c.Status = presenter.NewStatusPresenter(c.Activity, c.Busy, c.RootView)
	c.Loop = presenter.NewLoop(c.Status, nil)
	c.Runner = presenter.NewJobRunner(ctx, c.Busy, c.Loop, c.Dialogs, logger)
	c.Ops = presenter.NewOpsPresenter(c.Images, c.Docs, c.Screen, c.Runner, c.Dialogs, c.Forms, cfg, logger)
	return c
}

// NewImageService wires the compressor and save quality from cfg. The CLI
// uses it too.
func NewImageService(cfg *config.Config, logger *slog.Logger) *imageops.Service {
	comp := compress.New(imageio.JPEGEncoder{Quality: cfg.JPEGQuality}, nil, compress.Options{
		MaxTrials: cfg.MaxTrials,
		FloorPx:   cfg.FloorPx,
	}, logger)
	return imageops.NewService(comp, cfg.SaveQuality, logger)
}

// Actions maps the launcher buttons to the operations presenter.
func (c *AppContainer) Actions() view.Actions {
	o := c.Ops
	return view.Actions{
		MergePDFs:      o.MergePDFs,
		SplitPDF:       o.SplitPDF,
		ResizeImage:    o.ResizeImage,
		ImagesToPDF:    o.ImagesToPDF,
		CropImage:      o.CropImage,
		CompressImage:  o.CompressImage,
		LockPDF:        o.LockPDF,
		UnlockPDF:      o.UnlockPDF,
		CropScreenshot: o.CropScreenshot,
	}
}
