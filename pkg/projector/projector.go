// Package projector turns a cursor position into a point on the sketch
// plane by casting a ray through the camera.
package projector

import (
	"github.com/chazu/quillcad/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cursor is a pointer position in window pixels. Valid is false when the
// pointer is outside the window.
type Cursor struct {
	X, Y  float64
	Valid bool
}

// NoCursor is the cursor reported when no pointer position is available.
var NoCursor = Cursor{}

// At returns a valid cursor at (x, y).
func At(x, y float64) Cursor {
	return Cursor{X: x, Y: y, Valid: true}
}

// RayCaster casts a world-space ray through a window pixel.
type RayCaster interface {
	ViewportToRay(x, y float64) (geom.Ray, bool)
}

// Project returns the point where the camera ray through c meets plane.
// It reports false when the cursor is unavailable, the camera cannot cast
// a ray, or the ray never reaches the plane. Results are never cached:
// the camera moves between frames.
func Project(c Cursor, rc RayCaster, plane geom.Plane) (r3.Vec, bool) {
	if !c.Valid || rc == nil {
		return r3.Vec{}, false
	}
	ray, ok := rc.ViewportToRay(c.X, c.Y)
	if !ok {
		return r3.Vec{}, false
	}
	t, ok := ray.IntersectPlane(plane)
	if !ok {
		return r3.Vec{}, false
	}
	return ray.At(t), true
}

// Frame is the per-frame input the projector needs.
type Frame struct {
	Cursor Cursor
	Camera RayCaster
	// PointerCaptured is set when a UI widget owns the pointer this
	// frame. World input is ignored while it is set.
	PointerCaptured bool
}

// World projects the frame's cursor onto the ground plane. It reports no
// result while the UI holds the pointer.
func (f Frame) World() (r3.Vec, bool) {
	if f.PointerCaptured {
		return r3.Vec{}, false
	}
	return Project(f.Cursor, f.Camera, geom.GroundPlane)
}

// Overhead is a RayCaster for headless callers that already know the
// world point they want: every pixel casts straight down onto Point.
type Overhead struct {
	Point r3.Vec
}

// ViewportToRay ignores the pixel and returns a downward ray above Point.
func (o Overhead) ViewportToRay(_, _ float64) (geom.Ray, bool) {
	return geom.Ray{
		Origin: r3.Vec{X: o.Point.X, Y: o.Point.Y + 1, Z: o.Point.Z},
		Dir:    r3.Vec{Y: -1},
	}, true
}

// OverheadFrame returns a frame whose cursor projects onto p.
func OverheadFrame(p r3.Vec) Frame {
	return Frame{Cursor: At(0, 0), Camera: Overhead{Point: p}}
}
