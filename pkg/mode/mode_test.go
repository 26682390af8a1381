package mode

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// recordingRig captures camera calls.
type recordingRig struct {
	orbit   Button
	eye, up r3.Vec
	lookAts int
}

func (r *recordingRig) SetOrbitButton(b Button) { r.orbit = b }
func (r *recordingRig) LookAt(eye, _, up r3.Vec) {
	r.eye, r.up = eye, up
	r.lookAts++
}

var _ CameraRig = (*recordingRig)(nil)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Mode() != Viewing {
		t.Errorf("Mode() = %v, want viewing", m.Mode())
	}
	if m.Tool() != ToolLine {
		t.Errorf("Tool() = %v, want line", m.Tool())
	}
}

func TestStartFinishSketch(t *testing.T) {
	rig := &recordingRig{}
	m := NewMachine(rig)

	if err := m.StartSketch(); err != nil {
		t.Fatalf("StartSketch: %v", err)
	}
	if !m.Sketching() {
		t.Fatal("expected sketching mode")
	}
	if rig.orbit != ButtonMiddle {
		t.Errorf("orbit button = %v, want middle", rig.orbit)
	}
	if rig.eye != SketchEye || rig.up != SketchUp {
		t.Errorf("camera eye=%v up=%v, want top-down", rig.eye, rig.up)
	}

	if err := m.StartSketch(); !errors.Is(err, ErrAlreadySketching) {
		t.Errorf("second StartSketch err = %v, want ErrAlreadySketching", err)
	}

	if err := m.FinishSketch(); err != nil {
		t.Fatalf("FinishSketch: %v", err)
	}
	if m.Mode() != Viewing {
		t.Errorf("Mode() = %v, want viewing", m.Mode())
	}
	if rig.orbit != ButtonLeft {
		t.Errorf("orbit button = %v, want left", rig.orbit)
	}
	if err := m.FinishSketch(); !errors.Is(err, ErrNotSketching) {
		t.Errorf("FinishSketch in viewing err = %v, want ErrNotSketching", err)
	}
}

func TestHooksRunBeforeModeChanges(t *testing.T) {
	m := NewMachine(nil)
	var seen []Mode
	m.OnTransition(func(from, to Mode) {
		// The machine still reports the old mode while hooks run.
		seen = append(seen, m.Mode(), to)
	})
	_ = m.StartSketch()
	_ = m.FinishSketch()
	want := []Mode{Viewing, Sketching, Sketching, Viewing}
	if len(seen) != len(want) {
		t.Fatalf("hook calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("hook call %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestSetToolOnlyWhileSketching(t *testing.T) {
	m := NewMachine(nil)
	if err := m.SetTool(ToolCircle); !errors.Is(err, ErrNotSketching) {
		t.Errorf("SetTool in viewing err = %v, want ErrNotSketching", err)
	}
	_ = m.StartSketch()
	if err := m.SetTool(ToolSelect); err != nil {
		t.Fatalf("SetTool: %v", err)
	}
	if m.Tool() != ToolSelect {
		t.Errorf("Tool() = %v, want select", m.Tool())
	}
	if err := m.SetTool(Tool(42)); err == nil {
		t.Error("expected error for invalid tool")
	}
}

func TestParseTool(t *testing.T) {
	tests := []struct {
		in      string
		want    Tool
		wantErr bool
	}{
		{"line", ToolLine, false},
		{"Circle", ToolCircle, false},
		{"rect", ToolRectangle, false},
		{"rectangle", ToolRectangle, false},
		{" select ", ToolSelect, false},
		{"polygon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTool(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTool(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTool(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
