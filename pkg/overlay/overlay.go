// Package overlay builds the line-drawing layer shown over the 3D view:
// the ground grid, every sketched primitive and the live preview. The
// scene is plain data so any frontend can draw it; RenderPNG rasterizes
// it top-down for the CLI and tests.
package overlay

import (
	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/sketch"
	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Role says why a shape is drawn, and picks its color.
type Role string

const (
	RoleGrid     Role = "grid"
	RoleAxisX    Role = "axis-x"
	RoleAxisZ    Role = "axis-z"
	RoleNormal   Role = "normal"
	RoleSelected Role = "selected"
	RolePreview  Role = "preview"
)

// Segment is a straight line in world space.
type Segment struct {
	A     r3.Vec  `json:"a"`
	B     r3.Vec  `json:"b"`
	Role  Role    `json:"role"`
	Color gg.RGBA `json:"color"`
}

// Ring is a circle lying flat on a plane of constant Y.
type Ring struct {
	Center r3.Vec  `json:"center"`
	Radius float64 `json:"radius"`
	Role   Role    `json:"role"`
	Color  gg.RGBA `json:"color"`
}

// Scene is one frame's overlay, in draw order.
type Scene struct {
	Segments []Segment `json:"segments"`
	Rings    []Ring    `json:"rings"`
}

// Palette maps roles to colors.
type Palette map[Role]gg.RGBA

// NewPalette decodes the configured hex colors.
func NewPalette(c config.Colors) Palette {
	return Palette{
		RoleGrid:     gg.Hex(c.Grid),
		RoleAxisX:    gg.Hex(c.AxisX),
		RoleAxisZ:    gg.Hex(c.AxisZ),
		RoleNormal:   gg.Hex(c.Normal),
		RoleSelected: gg.Hex(c.Selected),
		RolePreview:  gg.Hex(c.Preview),
	}
}

func (s *Scene) line(a, b r3.Vec, role Role, p Palette) {
	s.Segments = append(s.Segments, Segment{A: a, B: b, Role: role, Color: p[role]})
}

func (s *Scene) add(prim sketch.Primitive, role Role, p Palette) {
	switch v := prim.(type) {
	case sketch.Line:
		s.line(v.P1, v.P2, role, p)
	case sketch.Circle:
		s.Rings = append(s.Rings, Ring{Center: v.Center, Radius: v.Radius, Role: role, Color: p[role]})
	case sketch.Rectangle:
		for _, e := range RectangleEdges(v.P1, v.P2) {
			s.line(e[0], e[1], role, p)
		}
	}
}

// RectangleEdges returns the four edges of the rectangle with opposite
// corners p1 and p2, walking p1, (p1.x, p2.z), p2, (p2.x, p1.z). The
// derived corners sit on the ground plane.
func RectangleEdges(p1, p2 r3.Vec) [4][2]r3.Vec {
	c2 := r3.Vec{X: p1.X, Z: p2.Z}
	c4 := r3.Vec{X: p2.X, Z: p1.Z}
	return [4][2]r3.Vec{{p1, c2}, {c2, p2}, {p2, c4}, {c4, p1}}
}

// Grid adds the ground grid: lines every step from -size to size along
// both axes, then the X axis and the Z axis on top.
func (s *Scene) Grid(size, step float64, p Palette) {
	if step > 0 {
		n := int(size / step)
		for i := -n; i <= n; i++ {
			f := float64(i) * step
			s.line(r3.Vec{X: -size, Z: f}, r3.Vec{X: size, Z: f}, RoleGrid, p)
			s.line(r3.Vec{X: f, Z: -size}, r3.Vec{X: f, Z: size}, RoleGrid, p)
		}
	}
	s.line(r3.Vec{X: -size}, r3.Vec{X: size}, RoleAxisX, p)
	s.line(r3.Vec{Z: -size}, r3.Vec{Z: size}, RoleAxisZ, p)
}

// Build assembles the overlay for a frame: the grid, then each visible
// entry (selected ones highlighted), then the preview if there is one.
func Build(entries []sketch.Entry, preview sketch.Primitive, cfg config.Config) Scene {
	p := NewPalette(cfg.Colors)
	var s Scene
	s.Grid(cfg.Grid.Size, cfg.Grid.Step, p)
	for _, e := range entries {
		if e.Hidden {
			continue
		}
		role := RoleNormal
		if e.Selected {
			role = RoleSelected
		}
		s.add(e.Primitive, role, p)
	}
	if preview != nil {
		s.add(preview, RolePreview, p)
	}
	return s
}

// Count returns the number of shapes drawn with the given role.
func (s Scene) Count(role Role) int {
	n := 0
	for _, seg := range s.Segments {
		if seg.Role == role {
			n++
		}
	}
	for _, r := range s.Rings {
		if r.Role == role {
			n++
		}
	}
	return n
}
