package sdfx

import (
	"math"
	"testing"
)

// Coarse grids keep marching cubes fast in tests.
const testCells = 40

func TestBox(t *testing.T) {
	k := New(testCells)
	box, err := k.Box(4, 1, 2)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3", len(mesh.Indices))
	}
}

func TestBoxIsCentered(t *testing.T) {
	k := New(testCells)
	box, err := k.Box(4, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	min, max := box.BoundingBox()
	want := [3]float64{2, 0.5, 1}
	for i := 0; i < 3; i++ {
		if math.Abs(max[i]-want[i]) > 1e-6 || math.Abs(min[i]+want[i]) > 1e-6 {
			t.Errorf("axis %d bounds = [%v,%v], want ±%v", i, min[i], max[i], want[i])
		}
	}
}

func TestCylinderRotatesUpright(t *testing.T) {
	k := New(testCells)
	cyl, err := k.Cylinder(4, 1.5, 32)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	const tol = 0.05
	min, max := cyl.BoundingBox()
	if math.Abs((max[2]-min[2])-4) > tol {
		t.Errorf("Z extent = %v, want 4", max[2]-min[2])
	}
	cyl = k.Rotate(cyl, -90, 0, 0)
	min, max = cyl.BoundingBox()
	if math.Abs((max[1]-min[1])-4) > tol {
		t.Errorf("Y extent = %v, want 4", max[1]-min[1])
	}
	if math.Abs((max[0]-min[0])-3) > tol {
		t.Errorf("X extent = %v, want 3", max[0]-min[0])
	}
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
}

func TestTranslate(t *testing.T) {
	k := New(testCells)
	box, err := k.Box(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	min, max := k.Translate(box, 100, 200, 300).BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}
