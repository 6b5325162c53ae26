// Package capture grabs the screen as a source image for the crop dialog.
package capture

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/vova616/screenshot"
)

// ErrEmptyRegion is returned when the requested region has no area.
var ErrEmptyRegion = errors.New("capture: empty region")

// Source produces an image to crop.
type Source interface {
	Grab(ctx context.Context) (*image.RGBA, error)
}

// Screen captures the primary screen, or Region when set, after Delay.
// The delay gives the caller time to hide its own windows.
type Screen struct {
	Region *image.Rectangle
	Delay  time.Duration
	Logger *slog.Logger
}

// Grab waits for Delay (or ctx) and captures the screen.
func (s Screen) Grab(ctx context.Context) (*image.RGBA, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	start := time.Now()
	var (
		img *image.RGBA
		err error
	)
	if s.Region != nil {
		if s.Region.Empty() {
			return nil, ErrEmptyRegion
		}
		img, err = screenshot.CaptureRect(*s.Region)
	} else {
		img, err = screenshot.CaptureScreen()
	}
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Debug("screen captured", "bounds", img.Bounds().String(), "elapsed", time.Since(start))
	}
	return img, nil
}
