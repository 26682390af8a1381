// Package session owns one interactive sketching session: the mode
// machine, the sketch store, the pending gesture and the extrude
// distance. The host calls Tick once per frame with that frame's input;
// everything else is a command the UI issues between frames.
//
// A Session is not safe for concurrent use. Hosts with more than one
// thread must confine it to a single owner per tick.
package session

import (
	"log"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/construct"
	"github.com/chazu/quillcad/pkg/extrude"
	"github.com/chazu/quillcad/pkg/mode"
	"github.com/chazu/quillcad/pkg/overlay"
	"github.com/chazu/quillcad/pkg/projector"
	"github.com/chazu/quillcad/pkg/selector"
	"github.com/chazu/quillcad/pkg/sketch"
	"gonum.org/v1/gonum/spatial/r3"
)

// MainCubeName is the part name of the scene's starting cube.
const MainCubeName = "main-cube"

// Input is one frame's worth of input. The pressed flags are edge
// triggered: true only on the frame the button went down.
type Input struct {
	Frame            projector.Frame
	PrimaryPressed   bool
	SecondaryPressed bool
}

// Output is what a frame produced.
type Output struct {
	// Committed is the primitive added this frame, zero if none.
	Committed sketch.ID
	// Solids are the extrusions emitted this frame.
	Solids []extrude.Result
	// Preview is the shape the pending gesture would commit at the
	// cursor, nil without one.
	Preview sketch.Primitive
	Overlay overlay.Scene
}

// Session is the top-level sketching context.
type Session struct {
	cfg      config.Config
	machine  *mode.Machine
	store    *sketch.Store
	gesture  construct.Constructor
	distance float64

	extrudeQueued bool
	solids        []extrude.Result
}

// New creates a session in Viewing mode. rig receives camera changes on
// mode transitions and may be nil.
func New(cfg config.Config, rig mode.CameraRig) *Session {
	s := &Session{
		cfg:      cfg,
		machine:  mode.NewMachine(rig),
		store:    sketch.NewStore(),
		distance: cfg.ExtrudeDistance,
	}
	s.machine.OnTransition(s.onTransition)
	return s
}

func (s *Session) onTransition(from, to mode.Mode) {
	if to == mode.Sketching {
		log.Printf("session: entering sketch mode")
	} else {
		log.Printf("session: returning to view mode")
	}
	s.reset()
}

// reset clears everything scoped to one sketch session.
func (s *Session) reset() {
	s.store.Clear()
	s.gesture.Reset()
	s.distance = s.cfg.ExtrudeDistance
	s.extrudeQueued = false
}

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Mode returns the current mode.
func (s *Session) Mode() mode.Mode { return s.machine.Mode() }

// Tool returns the active tool.
func (s *Session) Tool() mode.Tool { return s.machine.Tool() }

// Store exposes the sketch store for inspection.
func (s *Session) Store() *sketch.Store { return s.store }

// Anchor returns the pending first click, if any.
func (s *Session) Anchor() (r3.Vec, bool) { return s.gesture.Anchor() }

// StartSketch enters Sketching mode.
func (s *Session) StartSketch() error { return s.machine.StartSketch() }

// FinishSketch returns to Viewing mode.
func (s *Session) FinishSketch() error { return s.machine.FinishSketch() }

// SetTool changes the active tool. A pending anchor is kept.
func (s *Session) SetTool(t mode.Tool) error { return s.machine.SetTool(t) }

// ExtrudeDistance returns the distance the next extrusion will use.
func (s *Session) ExtrudeDistance() float64 { return s.distance }

// SetExtrudeDistance sets the extrusion distance. Any value is accepted,
// including zero and negatives.
func (s *Session) SetExtrudeDistance(d float64) { s.distance = d }

// ExtrudeNow queues an extrusion of the current selection for the next
// tick. It fails outside Sketching mode.
func (s *Session) ExtrudeNow() error {
	if !s.machine.Sketching() {
		return mode.ErrNotSketching
	}
	s.extrudeQueued = true
	return nil
}

// Tick runs one frame: projection, then construction or selection by
// tool, then any queued extrusion, then the overlay snapshot. Outside
// Sketching it returns an empty frame.
func (s *Session) Tick(in Input) Output {
	var out Output
	if !s.machine.Sketching() {
		return out
	}

	p, ok := in.Frame.World()
	tool := s.machine.Tool()

	if in.PrimaryPressed {
		if tool == mode.ToolSelect {
			if ok {
				selector.Select(s.store, p, s.cfg.Tolerance)
			}
		} else if prim, done := s.gesture.Primary(tool, p, ok); done {
			out.Committed = s.store.Add(prim)
		}
	}
	// A cancel needs no ground point, but the UI still owns the pointer
	// while it is captured.
	if in.SecondaryPressed && !in.Frame.PointerCaptured {
		s.gesture.Cancel()
	}

	if s.extrudeQueued {
		s.extrudeQueued = false
		out.Solids = extrude.Apply(s.store, s.distance)
		for _, r := range out.Solids {
			log.Printf("session: extruded %s %s by %g", r.Kind, r.Source.Short(), s.distance)
		}
		s.solids = append(s.solids, out.Solids...)
	}

	if ok {
		if prev, has := s.gesture.Preview(tool, p); has {
			out.Preview = prev
		}
	}
	out.Overlay = overlay.Build(s.store.Entries(), out.Preview, s.cfg)
	return out
}

// Extruded returns every solid extruded since the session was created.
// Solids outlive the sketch that produced them.
func (s *Session) Extruded() []extrude.Result {
	return append([]extrude.Result(nil), s.solids...)
}

// MainCube is the unit cube the scene starts with, resting on the ground.
func MainCube() extrude.Result {
	return extrude.Result{
		Kind:  sketch.KindRectangle,
		Name:  MainCubeName,
		Solid: extrude.Box{Width: 1, Height: 1, Depth: 1, Center: r3.Vec{Y: 0.5}},
	}
}

// SceneSolids returns what the 3D view should show: the main cube while
// viewing (it is hidden during sketching), then every extruded solid.
func (s *Session) SceneSolids() []extrude.Result {
	var out []extrude.Result
	if !s.machine.Sketching() {
		out = append(out, MainCube())
	}
	return append(out, s.solids...)
}
