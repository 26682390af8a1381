// Package tessellate turns extruded solids into triangle meshes using a
// geometry kernel. One mesh is produced per result.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/quillcad/pkg/extrude"
	"github.com/chazu/quillcad/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSegments is the cylinder facet hint passed to the kernel.
const DefaultSegments = 32

type options struct {
	segments int
}

// Option configures Tessellate.
type Option func(*options)

// WithSegments sets the cylinder facet hint.
func WithSegments(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.segments = n
		}
	}
}

// Tessellate produces one triangle mesh per result. Quads carry their own
// vertex data and bypass the kernel; cylinders and boxes are built
// centered, then translated into place. Results with a zero or negative
// extent produce an empty mesh rather than an error.
func Tessellate(results []extrude.Result, k kernel.Kernel, opts ...Option) ([]*kernel.Mesh, error) {
	o := options{segments: DefaultSegments}
	for _, fn := range opts {
		fn(&o)
	}

	meshes := make([]*kernel.Mesh, 0, len(results))
	for _, r := range results {
		m, err := tessellateOne(k, r.Solid, o)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s: %w", PartName(r), err)
		}
		m.PartName = PartName(r)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// PartName names the mesh for a result: its Name when set, otherwise
// "<kind>-<short id>".
func PartName(r extrude.Result) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Kind.String() + "-" + r.Source.Short()
}

func tessellateOne(k kernel.Kernel, s extrude.Solid, o options) (*kernel.Mesh, error) {
	var (
		solid  kernel.Solid
		center r3.Vec
		err    error
	)

	switch v := s.(type) {
	case extrude.Quad:
		return quadMesh(v), nil

	case extrude.Cylinder:
		h := math.Abs(v.Height)
		if h == 0 || v.Radius <= 0 {
			return &kernel.Mesh{}, nil
		}
		solid, err = k.Cylinder(h, v.Radius, o.segments)
		if err == nil {
			solid = k.Rotate(solid, -90, 0, 0)
		}
		center = v.Center

	case extrude.Box:
		h := math.Abs(v.Height)
		if v.Width <= 0 || h == 0 || v.Depth <= 0 {
			return &kernel.Mesh{}, nil
		}
		solid, err = k.Box(v.Width, h, v.Depth)
		center = v.Center

	default:
		return nil, fmt.Errorf("unsupported solid type %T", s)
	}
	if err != nil {
		return nil, err
	}

	if center != (r3.Vec{}) {
		solid = k.Translate(solid, center.X, center.Y, center.Z)
	}
	m, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("ToMesh failed: %w", err)
	}
	return m, nil
}

func quadMesh(q extrude.Quad) *kernel.Mesh {
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, 12),
		Normals:  make([]float32, 0, 12),
		UVs:      make([]float32, 0, 8),
		Indices:  append([]uint32(nil), q.Indices[:]...),
	}
	for i := range q.Positions {
		p, n := q.Positions[i], q.Normals[i]
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.UVs = append(m.UVs, float32(q.UVs[i][0]), float32(q.UVs[i][1]))
	}
	return m
}
