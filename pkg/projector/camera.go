package projector

import (
	"math"

	"github.com/chazu/quillcad/pkg/geom"
	"github.com/chazu/quillcad/pkg/mode"
	"gonum.org/v1/gonum/spatial/r3"
)

// PerspectiveCamera is a pinhole camera looking from Eye at Target.
// It implements RayCaster and mode.CameraRig.
type PerspectiveCamera struct {
	Eye    r3.Vec
	Target r3.Vec
	Up     r3.Vec
	FOV    float64 // vertical field of view in radians
	Width  float64 // viewport size in pixels
	Height float64

	Orbit mode.Button
}

var (
	_ RayCaster      = (*PerspectiveCamera)(nil)
	_ mode.CameraRig = (*PerspectiveCamera)(nil)
)

// NewPerspectiveCamera returns the default scene camera: looking at the
// origin from above and behind, orbiting with the left button.
func NewPerspectiveCamera(width, height float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Eye:    r3.Vec{X: -2.5, Y: 4.5, Z: 9},
		Target: r3.Vec{},
		Up:     geom.Up,
		FOV:    math.Pi / 4,
		Width:  width,
		Height: height,
		Orbit:  mode.ButtonLeft,
	}
}

// SetOrbitButton rebinds the orbit gesture.
func (c *PerspectiveCamera) SetOrbitButton(b mode.Button) { c.Orbit = b }

// LookAt moves the camera.
func (c *PerspectiveCamera) LookAt(eye, target, up r3.Vec) {
	c.Eye, c.Target, c.Up = eye, target, up
}

// basis returns the camera's forward, right and up unit vectors.
func (c *PerspectiveCamera) basis() (forward, right, up r3.Vec, ok bool) {
	d := r3.Sub(c.Target, c.Eye)
	if r3.Norm2(d) == 0 {
		return forward, right, up, false
	}
	forward = r3.Unit(d)
	x := r3.Cross(forward, c.Up)
	if r3.Norm2(x) == 0 {
		return forward, right, up, false
	}
	right = r3.Unit(x)
	up = r3.Unit(r3.Cross(right, forward))
	return forward, right, up, true
}

// ViewportToRay casts a ray from the eye through pixel (x, y). Pixel
// (0,0) is the top-left corner of the viewport.
func (c *PerspectiveCamera) ViewportToRay(x, y float64) (geom.Ray, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return geom.Ray{}, false
	}
	forward, right, up, ok := c.basis()
	if !ok {
		return geom.Ray{}, false
	}
	ndcX := 2*x/c.Width - 1
	ndcY := 1 - 2*y/c.Height
	aspect := c.Width / c.Height
	scale := math.Tan(c.FOV / 2)

	dir := r3.Add(forward, r3.Add(
		r3.Scale(ndcX*scale*aspect, right),
		r3.Scale(ndcY*scale, up),
	))
	return geom.Ray{Origin: c.Eye, Dir: r3.Unit(dir)}, true
}

// WorldToViewport projects a world point to pixel coordinates. The
// second result is false for points behind the camera.
func (c *PerspectiveCamera) WorldToViewport(p r3.Vec) (x, y float64, ok bool) {
	forward, right, up, ok := c.basis()
	if !ok {
		return 0, 0, false
	}
	rel := r3.Sub(p, c.Eye)
	z := r3.Dot(rel, forward)
	if z <= 0 {
		return 0, 0, false
	}
	aspect := c.Width / c.Height
	scale := math.Tan(c.FOV / 2)
	ndcX := r3.Dot(rel, right) / (z * scale * aspect)
	ndcY := r3.Dot(rel, up) / (z * scale)
	return (ndcX + 1) * c.Width / 2, (1 - ndcY) * c.Height / 2, true
}
