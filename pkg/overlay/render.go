package overlay

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Background is the clear color used by RenderPNG.
var Background = gg.Hex("#1E1E1E")

// View maps the ground plane onto an image looking straight down with -Z
// at the top, matching the sketch camera.
type View struct {
	Width, Height int
	Scale         float64 // pixels per world unit
}

// Pixel returns the image coordinates of a world point.
func (v View) Pixel(p r3.Vec) (x, y float64) {
	return float64(v.Width)/2 + p.X*v.Scale, float64(v.Height)/2 + p.Z*v.Scale
}

// RenderPNG rasterizes the scene top-down and writes it as PNG.
func RenderPNG(s Scene, v View, w io.Writer) error {
	if v.Width <= 0 || v.Height <= 0 || v.Scale <= 0 {
		return fmt.Errorf("overlay: invalid view %dx%d scale %g", v.Width, v.Height, v.Scale)
	}
	dc := gg.NewContext(v.Width, v.Height)
	defer dc.Close()

	dc.ClearWithColor(Background)
	dc.SetLineWidth(1)

	for _, seg := range s.Segments {
		x1, y1 := v.Pixel(seg.A)
		x2, y2 := v.Pixel(seg.B)
		dc.SetColor(seg.Color.Color())
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("overlay: stroke segment: %w", err)
		}
	}
	for _, r := range s.Rings {
		if r.Radius <= 0 {
			continue
		}
		x, y := v.Pixel(r.Center)
		dc.SetColor(r.Color.Color())
		dc.DrawCircle(x, y, r.Radius*v.Scale)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("overlay: stroke ring: %w", err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("overlay: encode png: %w", err)
	}
	return nil
}
