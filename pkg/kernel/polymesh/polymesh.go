// Package polymesh implements kernel.Kernel with exact polygonal meshes:
// a box is 12 triangles and a cylinder is a fan of flat facets. It is the
// default backend because it is fast and its output is deterministic.
package polymesh

import (
	"fmt"
	"math"

	"github.com/chazu/quillcad/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// MinSegments is the smallest facet count accepted for cylinders.
const MinSegments = 3

// solid is an indexed triangle mesh in world space.
type solid struct {
	positions []r3.Vec
	normals   []r3.Vec
	uvs       [][2]float64
	indices   []uint32
}

// BoundingBox returns the axis-aligned bounding box of the vertices.
func (s *solid) BoundingBox() (min, max [3]float64) {
	for i, p := range s.positions {
		c := [3]float64{p.X, p.Y, p.Z}
		for j := 0; j < 3; j++ {
			if i == 0 || c[j] < min[j] {
				min[j] = c[j]
			}
			if i == 0 || c[j] > max[j] {
				max[j] = c[j]
			}
		}
	}
	return min, max
}

// Kernel builds polygonal solids.
type Kernel struct{}

// New returns a polygonal kernel.
func New() *Kernel {
	return &Kernel{}
}

func unwrap(s kernel.Solid) (*solid, error) {
	ps, ok := s.(*solid)
	if !ok || ps == nil {
		return nil, fmt.Errorf("polymesh: solid %T was not created by this kernel", s)
	}
	return ps, nil
}

// mul multiplies a and b component-wise.
func mul(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// boxFaces lists each face normal with a tangent; the second tangent is
// normal × tangent so every face winds counter-clockwise from outside.
var boxFaces = []struct{ n, u r3.Vec }{
	{r3.Vec{X: 1}, r3.Vec{Y: 1}},
	{r3.Vec{X: -1}, r3.Vec{Y: 1}},
	{r3.Vec{Y: 1}, r3.Vec{Z: 1}},
	{r3.Vec{Y: -1}, r3.Vec{Z: 1}},
	{r3.Vec{Z: 1}, r3.Vec{X: 1}},
	{r3.Vec{Z: -1}, r3.Vec{X: 1}},
}

// Box returns a box with extents x, y, z centered on the origin. Each
// face has its own four vertices so normals stay flat.
func (k *Kernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("polymesh: box %gx%gx%g: extents must be positive", x, y, z)
	}
	half := r3.Vec{X: x / 2, Y: y / 2, Z: z / 2}
	s := &solid{}
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		v := r3.Cross(f.n, f.u)
		base := uint32(len(s.positions))
		for _, c := range corners {
			p := r3.Add(f.n, r3.Add(r3.Scale(c[0], f.u), r3.Scale(c[1], v)))
			s.positions = append(s.positions, mul(p, half))
			s.normals = append(s.normals, f.n)
			s.uvs = append(s.uvs, [2]float64{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return s, nil
}

// Cylinder returns a cylinder along Z centered on the origin with the
// given number of side facets.
func (k *Kernel) Cylinder(height, radius float64, segments int) (kernel.Solid, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("polymesh: cylinder h=%g r=%g: dimensions must be positive", height, radius)
	}
	if segments < MinSegments {
		segments = MinSegments
	}
	z0, z1 := -height/2, height/2
	s := &solid{}

	// The ring runs clockwise seen from +Z.
	ring := func(i int) (x, y float64) {
		a := -2 * math.Pi * float64(i) / float64(segments)
		return math.Cos(a), math.Sin(a)
	}

	// Side: one bottom/top vertex pair per seam position, the seam is
	// duplicated so UVs wrap cleanly.
	for i := 0; i <= segments; i++ {
		cx, cy := ring(i)
		n := r3.Vec{X: cx, Y: cy}
		u := float64(i) / float64(segments)
		s.positions = append(s.positions,
			r3.Vec{X: radius * cx, Y: radius * cy, Z: z0},
			r3.Vec{X: radius * cx, Y: radius * cy, Z: z1})
		s.normals = append(s.normals, n, n)
		s.uvs = append(s.uvs, [2]float64{u, 0}, [2]float64{u, 1})
	}
	for i := 0; i < segments; i++ {
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := b0+2, t0+2
		s.indices = append(s.indices, b0, t0, t1, b0, t1, b1)
	}

	// Caps.
	for _, c := range []struct {
		z  float64
		up bool
	}{{z1, true}, {z0, false}} {
		n := r3.Vec{Z: -1}
		if c.up {
			n = r3.Vec{Z: 1}
		}
		center := uint32(len(s.positions))
		s.positions = append(s.positions, r3.Vec{Z: c.z})
		s.normals = append(s.normals, n)
		s.uvs = append(s.uvs, [2]float64{0.5, 0.5})
		for i := 0; i < segments; i++ {
			cx, cy := ring(i)
			s.positions = append(s.positions, r3.Vec{X: radius * cx, Y: radius * cy, Z: c.z})
			s.normals = append(s.normals, n)
			s.uvs = append(s.uvs, [2]float64{0.5 + cx/2, 0.5 + cy/2})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 1 + uint32((i+1)%segments)
			if c.up {
				s.indices = append(s.indices, center, b, a)
			} else {
				s.indices = append(s.indices, center, a, b)
			}
		}
	}
	return s, nil
}

// Translate moves a solid by (x, y, z). Foreign solids are returned
// unchanged.
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ps, err := unwrap(s)
	if err != nil {
		return s
	}
	d := r3.Vec{X: x, Y: y, Z: z}
	out := ps.clone()
	for i := range out.positions {
		out.positions[i] = r3.Add(out.positions[i], d)
	}
	return out
}

// Rotate rotates a solid by Euler angles (degrees), X first, then Y,
// then Z. Foreign solids are returned unchanged.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ps, err := unwrap(s)
	if err != nil {
		return s
	}
	rots := []r3.Rotation{
		r3.NewRotation(x*math.Pi/180, r3.Vec{X: 1}),
		r3.NewRotation(y*math.Pi/180, r3.Vec{Y: 1}),
		r3.NewRotation(z*math.Pi/180, r3.Vec{Z: 1}),
	}
	out := ps.clone()
	for i := range out.positions {
		for _, r := range rots {
			out.positions[i] = r.Rotate(out.positions[i])
			out.normals[i] = r.Rotate(out.normals[i])
		}
	}
	return out
}

func (s *solid) clone() *solid {
	return &solid{
		positions: append([]r3.Vec(nil), s.positions...),
		normals:   append([]r3.Vec(nil), s.normals...),
		uvs:       append([][2]float64(nil), s.uvs...),
		indices:   append([]uint32(nil), s.indices...),
	}
}

// ToMesh flattens the solid into a kernel.Mesh.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ps, err := unwrap(s)
	if err != nil {
		return nil, err
	}
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(ps.positions)*3),
		Normals:  make([]float32, 0, len(ps.normals)*3),
		UVs:      make([]float32, 0, len(ps.uvs)*2),
		Indices:  append([]uint32(nil), ps.indices...),
	}
	for i, p := range ps.positions {
		n := ps.normals[i]
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, uv := range ps.uvs {
		m.UVs = append(m.UVs, float32(uv[0]), float32(uv[1]))
	}
	return m, nil
}
