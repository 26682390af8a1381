package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/quillcad/pkg/mode"
	"github.com/chazu/quillcad/pkg/projector"
	"github.com/chazu/quillcad/pkg/session"
	"github.com/chazu/quillcad/pkg/sketch"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r3"
)

// sexpPrimitive is a handle to a committed primitive, returned by click
// and select-at.
type sexpPrimitive struct {
	id   sketch.ID
	kind sketch.Kind
}

func (p *sexpPrimitive) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s)", p.kind, p.id.Short())
}
func (p *sexpPrimitive) Type() *zygo.RegisteredType { return nil }

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a keyword (:circle) or a plain string ("circle").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toPoint reads two positional numbers as an (x, z) point on the ground.
func toPoint(fn string, args []zygo.Sexp) (r3.Vec, error) {
	if len(args) != 2 {
		return r3.Vec{}, fmt.Errorf("%s: expected x and z, got %d arguments", fn, len(args))
	}
	x, err := toFloat64(args[0])
	if err != nil {
		return r3.Vec{}, fmt.Errorf("%s: x: %w", fn, err)
	}
	z, err := toFloat64(args[1])
	if err != nil {
		return r3.Vec{}, fmt.Errorf("%s: z: %w", fn, err)
	}
	return r3.Vec{X: x, Z: z}, nil
}

func (d *driver) ref(id sketch.ID) zygo.Sexp {
	e, ok := d.s.Store().Get(id)
	if !ok {
		return zygo.SexpNull
	}
	return &sexpPrimitive{id: id, kind: e.Primitive.Kind()}
}

// registerBuiltins installs the sketch commands into env. Each command
// that touches the viewport runs exactly one session frame.
//
// Source must go through preprocessSource first so that :keyword tokens
// and kebab-case names line up with what is registered here.
func registerBuiltins(env *zygo.Zlisp, d *driver) {

	// (start-sketch)
	env.AddFunction("start_sketch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := d.s.StartSketch(); err != nil {
			return zygo.SexpNull, fmt.Errorf("start-sketch: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (finish-sketch)
	env.AddFunction("finish_sketch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := d.s.FinishSketch(); err != nil {
			return zygo.SexpNull, fmt.Errorf("finish-sketch: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (tool :circle)
	env.AddFunction("tool", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tool: expected one tool name, got %d arguments", len(args))
		}
		s, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tool: %w", err)
		}
		t, err := mode.ParseTool(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tool: %w", err)
		}
		if err := d.s.SetTool(t); err != nil {
			return zygo.SexpNull, fmt.Errorf("tool: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (click 2 3) presses the primary button over (2, 0, 3). Returns the
	// committed primitive, or nil when the click only set the anchor.
	env.AddFunction("click", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := toPoint("click", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if d.s.Mode() != mode.Sketching {
			return zygo.SexpNull, fmt.Errorf("click: %w", mode.ErrNotSketching)
		}
		out := d.tick(session.Input{Frame: projector.OverheadFrame(p), PrimaryPressed: true})
		if out.Committed.IsZero() {
			return zygo.SexpNull, nil
		}
		return d.ref(out.Committed), nil
	})

	// (hover 2 3) moves the cursor without pressing anything.
	env.AddFunction("hover", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := toPoint("hover", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		d.tick(session.Input{Frame: projector.OverheadFrame(p)})
		return zygo.SexpNull, nil
	})

	// (cancel) presses the secondary button.
	env.AddFunction("cancel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d.tick(session.Input{Frame: projector.Frame{Cursor: projector.NoCursor}, SecondaryPressed: true})
		return zygo.SexpNull, nil
	})

	// (select-at 2 3) clicks with the Select tool, then restores the
	// previous tool. Returns the selected primitive or nil on a miss.
	env.AddFunction("select_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := toPoint("select-at", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		prev := d.s.Tool()
		if err := d.s.SetTool(mode.ToolSelect); err != nil {
			return zygo.SexpNull, fmt.Errorf("select-at: %w", err)
		}
		d.tick(session.Input{Frame: projector.OverheadFrame(p), PrimaryPressed: true})
		if err := d.s.SetTool(prev); err != nil {
			return zygo.SexpNull, fmt.Errorf("select-at: restoring tool: %w", err)
		}

		id, ok := d.s.Store().SelectedID()
		if !ok {
			return zygo.SexpNull, nil
		}
		return d.ref(id), nil
	})

	// (distance 2.5) sets the extrusion distance.
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("distance: expected one number, got %d arguments", len(args))
		}
		v, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		d.s.SetExtrudeDistance(v)
		return zygo.SexpNull, nil
	})

	// (extrude) or (extrude :distance 2) extrudes the selection and
	// returns how many solids were emitted.
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: distance: %w", err)
			}
			d.s.SetExtrudeDistance(f)
		}
		if err := d.s.ExtrudeNow(); err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		out := d.tick(session.Input{Frame: projector.Frame{Cursor: projector.NoCursor}})
		return &zygo.SexpInt{Val: int64(len(out.Solids))}, nil
	})
}
