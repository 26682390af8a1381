package polymesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxMesh(t *testing.T) {
	k := New()
	box, err := k.Box(4, 1, 2)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	min, max := box.BoundingBox()
	if min != [3]float64{-2, -0.5, -1} || max != [3]float64{2, 0.5, 1} {
		t.Errorf("bounds = %v..%v, want ±(2,0.5,1)", min, max)
	}
	m, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if m.VertexCount() != 24 {
		t.Errorf("VertexCount() = %d, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
	if len(m.UVs) != 24*2 {
		t.Errorf("len(UVs) = %d, want 48", len(m.UVs))
	}
}

// faceNormal returns the winding normal of triangle i.
func faceNormal(s *solid, i int) r3.Vec {
	a := s.positions[s.indices[3*i]]
	b := s.positions[s.indices[3*i+1]]
	c := s.positions[s.indices[3*i+2]]
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

func TestWindingMatchesNormals(t *testing.T) {
	k := New()
	box, _ := k.Box(1, 2, 3)
	cyl, _ := k.Cylinder(2, 1, 12)
	for name, s := range map[string]*solid{"box": box.(*solid), "cylinder": cyl.(*solid)} {
		for i := 0; i < len(s.indices)/3; i++ {
			fn := faceNormal(s, i)
			vn := s.normals[s.indices[3*i]]
			if r3.Dot(fn, vn) <= 0 {
				t.Errorf("%s triangle %d winds against its normal", name, i)
			}
		}
	}
}

func TestCylinderMesh(t *testing.T) {
	k := New()
	cyl, err := k.Cylinder(4, 1.5, 16)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	min, max := cyl.BoundingBox()
	if math.Abs(max[2]-2) > 1e-12 || math.Abs(min[2]+2) > 1e-12 {
		t.Errorf("Z bounds = [%v,%v], want [-2,2]", min[2], max[2])
	}
	if math.Abs(max[0]-1.5) > 1e-12 {
		t.Errorf("max X = %v, want 1.5", max[0])
	}
	m, _ := k.ToMesh(cyl)
	// 16 side quads plus two 16-triangle caps.
	if got := m.TriangleCount(); got != 16*2+16*2 {
		t.Errorf("TriangleCount() = %d, want 64", got)
	}
}

func TestCylinderClampsSegments(t *testing.T) {
	k := New()
	cyl, err := k.Cylinder(1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := k.ToMesh(cyl)
	if got := m.TriangleCount(); got != MinSegments*4 {
		t.Errorf("TriangleCount() = %d, want %d", got, MinSegments*4)
	}
}

func TestDegenerateDimensionsError(t *testing.T) {
	k := New()
	if _, err := k.Box(0, 1, 1); err == nil {
		t.Error("expected error for zero width box")
	}
	if _, err := k.Cylinder(1, 0, 8); err == nil {
		t.Error("expected error for zero radius cylinder")
	}
	if _, err := k.Cylinder(-1, 1, 8); err == nil {
		t.Error("expected error for negative height cylinder")
	}
}

func TestTranslateAndRotate(t *testing.T) {
	k := New()
	box, _ := k.Box(2, 2, 2)
	moved := k.Translate(box, 10, 0, -5)
	min, max := moved.BoundingBox()
	if min != [3]float64{9, -1, -6} || max != [3]float64{11, 1, -4} {
		t.Errorf("translated bounds = %v..%v", min, max)
	}
	// Original is untouched.
	if omin, _ := box.BoundingBox(); omin != [3]float64{-1, -1, -1} {
		t.Errorf("source mutated: %v", omin)
	}

	cyl, _ := k.Cylinder(4, 1, 16)
	upright := k.Rotate(cyl, -90, 0, 0)
	min, max = upright.BoundingBox()
	if math.Abs(max[1]-2) > 1e-9 || math.Abs(min[1]+2) > 1e-9 {
		t.Errorf("upright Y bounds = [%v,%v], want [-2,2]", min[1], max[1])
	}
	// Top cap center follows the 16+1 side vertex pairs.
	if n := upright.(*solid).normals[2*17]; math.Abs(n.Y-1) > 1e-9 {
		t.Errorf("top cap normal = %v, want +Y", n)
	}

	tall, _ := k.Box(1, 4, 1)
	lying := k.Rotate(tall, 90, 0, 0)
	min, max = lying.BoundingBox()
	if math.Abs((max[2]-min[2])-4) > 1e-9 || math.Abs((max[1]-min[1])-1) > 1e-9 {
		t.Errorf("rotated extents = %v..%v, want Z extent 4 and Y extent 1", min, max)
	}
}
