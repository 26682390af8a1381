// Package geom holds the pure geometry helpers used by sketching and
// selection: point-to-segment and point-to-circumference distances and
// ray/plane intersection. Nothing in this package keeps state.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon below which a ray is considered parallel to a plane.
const epsilon = 1e-9

// Up is the world up axis. Sketches live on the plane normal to it and
// extrusion always runs along it.
var Up = r3.Vec{Y: 1}

// GroundPlane is the fixed sketch plane: origin at world zero, normal Up.
var GroundPlane = Plane{Origin: r3.Vec{}, Normal: Up}

// Ray is a half-line starting at Origin and running along Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// Plane is an infinite plane through Origin with the given Normal.
type Plane struct {
	Origin r3.Vec
	Normal r3.Vec
}

// IntersectPlane returns the ray parameter where r meets p. It reports
// false when the ray is parallel to the plane or the hit lies behind the
// ray origin.
func (r Ray) IntersectPlane(p Plane) (float64, bool) {
	denom := r3.Dot(p.Normal, r.Dir)
	if math.Abs(denom) <= epsilon {
		return 0, false
	}
	t := r3.Dot(r3.Sub(p.Origin, r.Origin), p.Normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// PointSegmentDistanceSq returns the squared distance from p to the
// segment ab. The projection of p onto the segment is clamped to its end
// points; a zero-length segment degrades to the distance to a.
func PointSegmentDistanceSq(p, a, b r3.Vec) float64 {
	ap := r3.Sub(p, a)
	ab := r3.Sub(b, a)
	abLenSq := r3.Norm2(ab)
	if abLenSq == 0 {
		return r3.Norm2(ap)
	}
	t := r3.Dot(ap, ab) / abLenSq
	switch {
	case t < 0:
		return r3.Norm2(ap)
	case t > 1:
		return r3.Norm2(r3.Sub(p, b))
	}
	projection := r3.Add(a, r3.Scale(t, ab))
	return r3.Norm2(r3.Sub(p, projection))
}

// CircumferenceDistanceSq returns the squared distance from p to the
// circumference of the circle (center, radius). Points inside the disc
// are measured to the rim, not to the disc.
func CircumferenceDistanceSq(p, center r3.Vec, radius float64) float64 {
	d := r3.Norm(r3.Sub(p, center)) - radius
	return d * d
}

// Bounds is an axis-aligned rectangle on the sketch plane.
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// RectBounds returns the X/Z bounds of the rectangle spanned by two
// opposite corners.
func RectBounds(p1, p2 r3.Vec) Bounds {
	return Bounds{
		MinX: math.Min(p1.X, p2.X),
		MaxX: math.Max(p1.X, p2.X),
		MinZ: math.Min(p1.Z, p2.Z),
		MaxZ: math.Max(p1.Z, p2.Z),
	}
}

// Width is the X extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth is the Z extent.
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

// Center returns the midpoint of the bounds at height y.
func (b Bounds) Center(y float64) r3.Vec {
	return r3.Vec{X: (b.MinX + b.MaxX) / 2, Y: y, Z: (b.MinZ + b.MaxZ) / 2}
}

// Contains reports whether p falls inside the bounds (edges included).
// The Y coordinate is ignored.
func (b Bounds) Contains(p r3.Vec) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// NearBorder reports whether p lies within tol of any of the four
// boundary lines. The lines are treated as infinite, so a point far
// along one of them still counts.
func (b Bounds) NearBorder(p r3.Vec, tol float64) bool {
	return math.Abs(p.X-b.MinX) < tol ||
		math.Abs(p.X-b.MaxX) < tol ||
		math.Abs(p.Z-b.MinZ) < tol ||
		math.Abs(p.Z-b.MaxZ) < tol
}
