// Package extrude turns a sketch primitive and a distance into a solid
// description: a flat quad for a line, a cylinder for a circle and a box
// for a rectangle. Extrusion always runs along the world up axis.
package extrude

import (
	"github.com/chazu/quillcad/pkg/geom"
	"github.com/chazu/quillcad/pkg/sketch"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is an extruded shape. The set of implementations is closed:
// Quad, Cylinder and Box.
type Solid interface {
	solid() // marker method restricting implementations to this package
}

// Quad is a single planar quad with explicit vertex data. Vertices are
// (p1, p2, p2+offset, p1+offset).
type Quad struct {
	Positions [4]r3.Vec     `json:"positions"`
	Normals   [4]r3.Vec     `json:"normals"`
	UVs       [4][2]float64 `json:"uvs"`
	Indices   [6]uint32     `json:"indices"`
}

func (Quad) solid() {}

// Cylinder is an upright cylinder. Center is the middle of its axis.
// Height may be zero or negative.
type Cylinder struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
	Center r3.Vec  `json:"center"`
}

func (Cylinder) solid() {}

// Box is an axis-aligned box. Center is its midpoint. Height may be zero
// or negative.
type Box struct {
	Width  float64 `json:"width"`  // along X
	Height float64 `json:"height"` // along Y
	Depth  float64 `json:"depth"`  // along Z
	Center r3.Vec  `json:"center"`
}

func (Box) solid() {}

// quadUVs and quadIndices are shared by every extruded line.
var (
	quadUVs     = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
)

// Extrude sweeps p along the up axis by distance. The distance is not
// validated; a negative value extrudes downwards and zero gives a flat
// solid.
func Extrude(p sketch.Primitive, distance float64) Solid {
	switch v := p.(type) {
	case sketch.Line:
		offset := r3.Scale(distance, geom.Up)
		return Quad{
			Positions: [4]r3.Vec{v.P1, v.P2, r3.Add(v.P2, offset), r3.Add(v.P1, offset)},
			Normals:   [4]r3.Vec{geom.Up, geom.Up, geom.Up, geom.Up},
			UVs:       quadUVs,
			Indices:   quadIndices,
		}
	case sketch.Circle:
		return Cylinder{
			Radius: v.Radius,
			Height: distance,
			Center: r3.Vec{X: v.Center.X, Y: v.Center.Y + distance/2, Z: v.Center.Z},
		}
	case sketch.Rectangle:
		b := geom.RectBounds(v.P1, v.P2)
		return Box{
			Width:  b.Width(),
			Height: distance,
			Depth:  b.Depth(),
			Center: b.Center(v.P1.Y + distance/2),
		}
	}
	return nil
}

// Result is one solid emitted by Apply. Name is empty for extrusions;
// scene fixtures such as the main cube set it and leave Source zero.
type Result struct {
	Source sketch.ID   `json:"source"`
	Kind   sketch.Kind `json:"kind"`
	Name   string      `json:"name,omitempty"`
	Solid  Solid       `json:"solid"`
}

// Apply extrudes every selected, visible entry in s and hides each source
// so it can no longer be selected or extruded again. With nothing
// selected it does nothing.
func Apply(s *sketch.Store, distance float64) []Result {
	var results []Result
	for _, e := range s.Selected() {
		if e.Hidden {
			continue
		}
		solid := Extrude(e.Primitive, distance)
		if solid == nil {
			continue
		}
		results = append(results, Result{Source: e.ID, Kind: e.Primitive.Kind(), Solid: solid})
		s.Hide(e.ID)
	}
	return results
}
