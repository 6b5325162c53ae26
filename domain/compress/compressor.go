// Package compress searches for the largest downscale of an image whose lossy
// encoding fits a byte budget.
//
// The encoded size at a given scale is treated as a black box sampled by real
// encodes. The search starts from an area-proportional estimate and adjusts the
// scale geometrically: +5% after a fit, -10% after an overshoot.
package compress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/soocke/pdfimg-tool/domain/imageio"
)

var (
	// ErrBudgetUnreachable marks a result that is larger than the requested budget.
	// It is informational: the result still carries a valid image.
	ErrBudgetUnreachable = errors.New("compress: target size unreachable")
	// ErrInvalidTarget is returned for a non-positive byte budget.
	ErrInvalidTarget = errors.New("compress: target size must be positive")
	ErrNilImage      = errors.New("compress: nil image")
)

// Encoder encodes an image with a fixed format and quality.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
}

// Resampler scales img to exactly w x h.
type Resampler func(img image.Image, w, h int) image.Image

// Options controls the search. Zero fields take the defaults.
type Options struct {
	MaxTrials     int     // encode attempts after the full-resolution one
	FloorPx       int     // smallest dimension a trial may shrink to
	Margin        float64 // safety factor on the initial estimate
	Grow          float64 // scale multiplier after a fitting trial
	Shrink        float64 // scale multiplier after an overshoot
	CloseEnough   float64 // stop once a fit reaches this fraction of the budget
	FallbackScale float64 // linear scale used when nothing fits
	OnTrial       func(Trial)
}

// DefaultOptions returns the standard search parameters.
func DefaultOptions() Options {
	return Options{
		MaxTrials:     10,
		FloorPx:       50,
		Margin:        0.95,
		Grow:          1.05,
		Shrink:        0.9,
		CloseEnough:   0.90,
		FallbackScale: 0.10,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxTrials <= 0 {
		o.MaxTrials = d.MaxTrials
	}
	if o.FloorPx <= 0 {
		o.FloorPx = d.FloorPx
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.Grow <= 1 {
		o.Grow = d.Grow
	}
	if o.Shrink <= 0 || o.Shrink >= 1 {
		o.Shrink = d.Shrink
	}
	if o.CloseEnough <= 0 || o.CloseEnough > 1 {
		o.CloseEnough = d.CloseEnough
	}
	if o.FallbackScale <= 0 || o.FallbackScale >= 1 {
		o.FallbackScale = d.FallbackScale
	}
	return o
}

// Trial records one sampled encode.
type Trial struct {
	Scale  float64
	Width  int
	Height int
	Size   int
	Fits   bool
}

// Result is the chosen candidate. Data holds its exact encoding.
type Result struct {
	Image       image.Image
	Data        []byte
	Size        int
	Width       int
	Height      int
	Trials      []Trial
	Unreachable bool
}

// Err returns ErrBudgetUnreachable when the result exceeds the budget.
func (r Result) Err() error {
	if r.Unreachable {
		return ErrBudgetUnreachable
	}
	return nil
}

// Compressor runs the scale search. It holds no per-call state and may be
// shared between goroutines if its Encoder and Resampler are.
type Compressor struct {
	enc    Encoder
	resize Resampler
	opts   Options
	logger *slog.Logger
}

// New returns a Compressor. A nil resize uses Lanczos resampling.
func New(enc Encoder, resize Resampler, opts Options, logger *slog.Logger) *Compressor {
	if resize == nil {
		resize = imageio.Lanczos
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compressor{enc: enc, resize: resize, opts: opts.normalized(), logger: logger}
}

type candidate struct {
	img  image.Image
	data []byte
	w, h int
}

// Compress returns the largest candidate found whose encoding is at most
// targetBytes. If the source already fits it is returned unscaled. When no
// trial fits, the smallest encode seen (including a 10% fallback) is returned
// with Unreachable set. ctx is checked between trials.
func (c *Compressor) Compress(ctx context.Context, img image.Image, targetBytes int) (Result, error) {
	if img == nil {
		return Result{}, ErrNilImage
	}
	if targetBytes <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTarget, targetBytes)
	}
	src := imageio.ToRGB(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	full, err := c.encode(src, w, h)
	if err != nil {
		return Result{}, err
	}
	if len(full.data) <= targetBytes {
		c.logger.Debug("compress: source fits budget", "size", len(full.data), "target", targetBytes)
		return c.result(full, nil, false), nil
	}

	o := c.opts
	floorW, floorH := min(o.FloorPx, w), min(o.FloorPx, h)
	scale := math.Sqrt(float64(targetBytes)/float64(len(full.data))) * o.Margin
	full = nil

	var best, smallest *candidate
	trials := make([]Trial, 0, o.MaxTrials)
	for i := 0; i < o.MaxTrials; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		// Growing after fits may push scale past 1; trials never upscale.
		nw := min(w, max(floorW, int(float64(w)*scale)))
		nh := min(h, max(floorH, int(float64(h)*scale)))
		cand, err := c.encode(c.resize(src, nw, nh), nw, nh)
		if err != nil {
			return Result{}, err
		}
		t := Trial{Scale: scale, Width: nw, Height: nh, Size: len(cand.data), Fits: len(cand.data) <= targetBytes}
		trials = append(trials, t)
		c.logger.Debug("compress: trial", "n", i+1, "scale", scale, "width", nw, "height", nh, "size", t.Size, "fits", t.Fits)
		if o.OnTrial != nil {
			o.OnTrial(t)
		}
		if smallest == nil || len(cand.data) < len(smallest.data) {
			smallest = cand
		}
		if t.Fits {
			best = cand
			scale = min(1, scale*o.Grow)
		} else {
			scale *= o.Shrink
		}
		if best != nil && float64(len(best.data)) >= o.CloseEnough*float64(targetBytes) {
			break
		}
		if nw <= floorW || nh <= floorH {
			break
		}
	}
	if best != nil {
		return c.result(best, trials, false), nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	fw := max(floorW, int(float64(w)*o.FallbackScale))
	fh := max(floorH, int(float64(h)*o.FallbackScale))
	fallback, err := c.encode(c.resize(src, fw, fh), fw, fh)
	if err != nil {
		return Result{}, err
	}
	pick := fallback
	if smallest != nil && len(smallest.data) < len(fallback.data) {
		pick = smallest
	}
	c.logger.Info("compress: budget unreachable", "target", targetBytes, "size", len(pick.data), "width", pick.w, "height", pick.h)
	return c.result(pick, trials, true), nil
}

func (c *Compressor) encode(img image.Image, w, h int) (*candidate, error) {
	var buf bytes.Buffer
	if err := c.enc.Encode(&buf, img); err != nil {
		var encErr *imageio.EncodeError
		if errors.As(err, &encErr) {
			return nil, err
		}
		return nil, &imageio.EncodeError{Format: imageio.FormatJPEG, Err: err}
	}
	return &candidate{img: img, data: buf.Bytes(), w: w, h: h}, nil
}

func (c *Compressor) result(cand *candidate, trials []Trial, unreachable bool) Result {
	return Result{
		Image:       cand.img,
		Data:        cand.data,
		Size:        len(cand.data),
		Width:       cand.w,
		Height:      cand.h,
		Trials:      trials,
		Unreachable: unreachable,
	}
}
