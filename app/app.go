package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pdfimg-tool/config"
	"github.com/soocke/pdfimg-tool/ui/theme"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	config  *config.Config
	logger  *slog.Logger
	width   int
	height  int
	afterID string

	ctx    context.Context
	cancel context.CancelFunc
	c      *AppContainer
}

// NewApp sizes the root window and wires the container. Widgets are created
// in Start.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) *app {
	if err := enableDPIAwareness(); err != nil {
		logger.Warn("dpi awareness unavailable", "error", err)
	}
	a := &app{config: cfg, logger: logger, width: width, height: height}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.c = BuildContainer(a.ctx, cfg, logger)
	a.c.Loop.Schedule = a.scheduleUpdate

	App.WmTitle(title)
	App.Configure(Background(theme.ColorBg))
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

func (a *app) Start() {
	theme.InitStyles()
	a.c.RootView.Build(a.c.Actions())

	a.scheduleUpdate()
	a.logger.Info("app started", "width", a.width, "height", a.height, "workers", a.config.Workers)

	App.Wait()
}

func (a *app) exitHandler() {
	a.cancel()
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	a.logger.Info("app exiting")
	Destroy(App)
}

// scheduleUpdate queues the next loop tick on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	if a.ctx.Err() != nil {
		return
	}
	a.afterID = TclAfter(tick, a.c.Loop.Tick)
}
