package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/soocke/pdfimg-tool/app"
	"github.com/soocke/pdfimg-tool/config"
	"github.com/soocke/pdfimg-tool/debug"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var args cliArgs
	cliCtx := kong.Parse(
		&args,
		kong.Name("pdfimg"),
		kong.Description("Image & PDF utility: crop, compress, resize, merge, split, convert, lock and unlock."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(args.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if args.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level, args.LogFormat)

	cfg := args.config()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if cfg.Debug {
		debug.StartMemLogger(ctx, 2*time.Second, logger)
	}

	return cliCtx.Run(&env{ctx: ctx, cfg: cfg, logger: logger})
}

// env is bound into every command's Run method.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
}

type Globals struct {
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" env:"PDFIMG_LOG_LEVEL"`
	LogFormat string `help:"Log format." enum:"json,text" default:"text" env:"PDFIMG_LOG_FORMAT"`
	Debug     bool   `help:"Debug logging and periodic memory stats." env:"PDFIMG_DEBUG"`

	Quality     int `help:"JPEG quality used by the compressor." default:"85" env:"PDFIMG_QUALITY"`
	SaveQuality int `help:"JPEG quality for crop and resize outputs." default:"95" env:"PDFIMG_SAVE_QUALITY"`
	MaxTrials   int `help:"Compression search attempts." default:"10" env:"PDFIMG_MAX_TRIALS"`
	FloorPx     int `help:"Smallest dimension the compressor may shrink to." default:"50" env:"PDFIMG_FLOOR_PX"`
	Workers     int `help:"Parallel image conversions for topdf (0 = CPU count)." default:"0" env:"PDFIMG_WORKERS"`
	PreviewW    int `help:"Maximum crop preview width." default:"800" env:"PDFIMG_PREVIEW_W"`
	PreviewH    int `help:"Maximum crop preview height." default:"600" env:"PDFIMG_PREVIEW_H"`
}

func (g Globals) config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Debug = g.Debug
	cfg.JPEGQuality = g.Quality
	cfg.SaveQuality = g.SaveQuality
	cfg.MaxTrials = g.MaxTrials
	cfg.FloorPx = g.FloorPx
	cfg.Workers = g.Workers
	cfg.PreviewMaxW = g.PreviewW
	cfg.PreviewMaxH = g.PreviewH
	_ = cfg.Validate()
	return cfg
}

type cliArgs struct {
	Globals `embed:""`

	Gui      guiCmd      `cmd:"" default:"1" help:"Open the launcher window."`
	Crop     cropCmd     `cmd:"" help:"Crop an image to a rectangle."`
	Compress compressCmd `cmd:"" help:"Compress an image to a target size (JPEG)."`
	Resize   resizeCmd   `cmd:"" help:"Resize an image."`
	Merge    mergeCmd    `cmd:"" help:"Merge PDFs in the given order."`
	Split    splitCmd    `cmd:"" help:"Extract page ranges into a new PDF."`
	Topdf    toPDFCmd    `cmd:"" name:"topdf" help:"Convert images into a PDF, one page each."`
	Lock     lockCmd     `cmd:"" help:"Password-protect a PDF."`
	Unlock   unlockCmd   `cmd:"" help:"Remove the password from a PDF."`
	Pages    pagesCmd    `cmd:"" help:"Print the page count of a PDF."`
}

type guiCmd struct{}

func (cmd *guiCmd) Run(e *env) error {
	application := app.NewApp("Image & PDF Utility Tool", 800, 530, e.cfg, e.logger)
	application.Start()
	return nil
}
