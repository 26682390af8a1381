// Package mode tracks whether the application is viewing the scene or
// editing a sketch, and which sketch tool is active. Transitions run
// registered hooks so that the owner can reset its state and reconfigure
// the camera as part of the same step.
package mode

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the top-level application mode.
type Mode int

const (
	Viewing Mode = iota
	Sketching
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Sketching:
		return "sketching"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Tool is the active sketch tool. It is independent of Mode but can only
// be changed while sketching.
type Tool int

const (
	ToolLine Tool = iota
	ToolCircle
	ToolRectangle
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolLine:
		return "line"
	case ToolCircle:
		return "circle"
	case ToolRectangle:
		return "rectangle"
	case ToolSelect:
		return "select"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ParseTool converts a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return ToolLine, nil
	case "circle":
		return ToolCircle, nil
	case "rectangle", "rect":
		return ToolRectangle, nil
	case "select":
		return ToolSelect, nil
	}
	return 0, fmt.Errorf("mode: unknown tool %q, expected line, circle, rectangle or select", s)
}

var (
	ErrNotSketching     = errors.New("mode: not in sketch mode")
	ErrAlreadySketching = errors.New("mode: already in sketch mode")
)

// Button names a pointer button for orbit bindings.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// CameraRig is the part of the viewport collaborator the machine drives on
// mode changes.
type CameraRig interface {
	SetOrbitButton(b Button)
	LookAt(eye, target, up r3.Vec)
}

// Top-down sketch view used on entry to Sketching.
var (
	SketchEye    = r3.Vec{Y: 10}
	SketchTarget = r3.Vec{}
	SketchUp     = r3.Vec{Z: -1}
)

// Hook runs on a transition. from and to are the modes on either side.
type Hook func(from, to Mode)

// Machine is the mode/tool state machine. The zero value is not usable;
// call NewMachine.
type Machine struct {
	mode  Mode
	tool  Tool
	rig   CameraRig
	hooks []Hook
}

// NewMachine returns a machine in Viewing mode with the Line tool. rig
// may be nil when no camera is attached.
func NewMachine(rig CameraRig) *Machine {
	return &Machine{mode: Viewing, tool: ToolLine, rig: rig}
}

// OnTransition registers a hook run on every mode change, after the
// camera has been reconfigured and before the new mode becomes visible.
func (m *Machine) OnTransition(h Hook) {
	m.hooks = append(m.hooks, h)
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Tool returns the active tool.
func (m *Machine) Tool() Tool { return m.tool }

// Sketching reports whether the machine is in Sketching mode.
func (m *Machine) Sketching() bool { return m.mode == Sketching }

// StartSketch enters Sketching mode. The camera moves to a top-down view
// and orbiting moves to the middle button.
func (m *Machine) StartSketch() error {
	if m.mode == Sketching {
		return ErrAlreadySketching
	}
	if m.rig != nil {
		m.rig.LookAt(SketchEye, SketchTarget, SketchUp)
		m.rig.SetOrbitButton(ButtonMiddle)
	}
	m.transition(Sketching)
	return nil
}

// FinishSketch returns to Viewing mode and restores left-button orbit.
func (m *Machine) FinishSketch() error {
	if m.mode != Sketching {
		return ErrNotSketching
	}
	if m.rig != nil {
		m.rig.SetOrbitButton(ButtonLeft)
	}
	m.transition(Viewing)
	return nil
}

// SetTool changes the active tool. It fails outside Sketching mode.
func (m *Machine) SetTool(t Tool) error {
	if m.mode != Sketching {
		return ErrNotSketching
	}
	if t < ToolLine || t > ToolSelect {
		return fmt.Errorf("mode: invalid tool %d", int(t))
	}
	m.tool = t
	return nil
}

func (m *Machine) transition(to Mode) {
	from := m.mode
	for _, h := range m.hooks {
		h(from, to)
	}
	m.mode = to
}
