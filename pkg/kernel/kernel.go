// Package kernel defines the geometry kernel used to tessellate extruded
// solids into triangle meshes. Implementations (polymesh, sdfx) sit
// behind this interface so the backend can be swapped without touching
// the sketch or extrusion code.
//
// Conventions: Y is up. Box and Cylinder are centered on the origin;
// callers orient them with Rotate and place them with Translate.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box returns an axis-aligned box with extents x, y, z.
	Box(x, y, z float64) (Solid, error)
	// Cylinder returns a cylinder whose axis runs along Z. segments is a
	// hint for polygonal backends.
	Cylinder(height, radius float64, segments int) (Solid, error)

	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	ToMesh(s Solid) (*Mesh, error)
}
