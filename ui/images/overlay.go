package images

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Overlay draws the crop selection on top of a preview: the area outside the
// selection is dimmed, the selection gets a border and eight square handles.
type Overlay struct {
	Dim        color.RGBA
	Border     color.RGBA
	Handle     color.RGBA
	HandleRim  color.RGBA
	BorderPx   int
	HandleSize int
}

// DefaultOverlay matches the app palette: 50% black dim, blue border/handles.
func DefaultOverlay(handleSize int) Overlay {
	return Overlay{
		Dim:        color.RGBA{0, 0, 0, 128},
		Border:     color.RGBA{0x00, 0x78, 0xd4, 0xff},
		Handle:     color.RGBA{0x00, 0x78, 0xd4, 0xff},
		HandleRim:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		BorderPx:   2,
		HandleSize: handleSize,
	}
}

// Render composes base and the selection sel into dst. dst and base must
// share bounds; sel is in the same coordinate space.
func (o Overlay) Render(dst *image.RGBA, base image.Image, sel image.Rectangle) {
	b := dst.Bounds()
	draw.Draw(dst, b, base, base.Bounds().Min, draw.Src)
	sel = sel.Intersect(b)

	dim := image.NewUniform(o.Dim)
	for _, band := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, sel.Min.Y),
		image.Rect(b.Min.X, sel.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, b.Max.X, sel.Max.Y),
	} {
		if !band.Empty() {
			draw.Draw(dst, band, dim, image.Point{}, draw.Over)
		}
	}

	bp := max(1, o.BorderPx)
	border := image.NewUniform(o.Border)
	for _, edge := range []image.Rectangle{
		image.Rect(sel.Min.X, sel.Min.Y, sel.Max.X, sel.Min.Y+bp),
		image.Rect(sel.Min.X, sel.Max.Y-bp, sel.Max.X, sel.Max.Y),
		image.Rect(sel.Min.X, sel.Min.Y, sel.Min.X+bp, sel.Max.Y),
		image.Rect(sel.Max.X-bp, sel.Min.Y, sel.Max.X, sel.Max.Y),
	} {
		draw.Draw(dst, edge.Intersect(b), border, image.Point{}, draw.Src)
	}

	half := o.HandleSize / 2
	mx, my := (sel.Min.X+sel.Max.X)/2, (sel.Min.Y+sel.Max.Y)/2
	rim, fill := image.NewUniform(o.HandleRim), image.NewUniform(o.Handle)
	for _, p := range []image.Point{
		{sel.Min.X, sel.Min.Y}, {sel.Max.X, sel.Min.Y}, {sel.Min.X, sel.Max.Y}, {sel.Max.X, sel.Max.Y},
		{mx, sel.Min.Y}, {mx, sel.Max.Y}, {sel.Min.X, my}, {sel.Max.X, my},
	} {
		sq := image.Rect(p.X-half, p.Y-half, p.X+half, p.Y+half)
		draw.Draw(dst, sq.Intersect(b), rim, image.Point{}, draw.Src)
		draw.Draw(dst, sq.Inset(1).Intersect(b), fill, image.Point{}, draw.Src)
	}
}

// RenderPNG composes the overlay in a pooled frame and returns PNG bytes.
func (o Overlay) RenderPNG(base image.Image, sel image.Rectangle) []byte {
	frame := AcquireFrame(base.Bounds())
	defer RecycleFrame(frame)
	o.Render(frame, base, sel)
	return EncodePNG(frame)
}
