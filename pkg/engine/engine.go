// Package engine runs sketch scripts: small Lisp programs that drive a
// session the way a user would, one click at a time. It wraps zygomys in
// a sandboxed environment so scripted sessions are reproducible.
//
//	(start-sketch)
//	(tool :rectangle)
//	(click 0 0) (click 4 2)
//	(select-at 2 1)
//	(extrude :distance 1)
//	(finish-sketch)
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/extrude"
	"github.com/chazu/quillcad/pkg/mode"
	"github.com/chazu/quillcad/pkg/overlay"
	"github.com/chazu/quillcad/pkg/projector"
	"github.com/chazu/quillcad/pkg/session"
	"github.com/chazu/quillcad/pkg/sketch"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a failed sketch command.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is an advisory finding about a primitive the script
// committed.
type EvalWarning struct {
	Message string
	ID      sketch.ID
}

// Result is what a script left behind.
type Result struct {
	// Scene is every solid the 3D view would show after the script.
	Scene []extrude.Result
	// Extruded lists the solids the script produced, in order.
	Extruded []extrude.Result
	// Entries is the sketch store as the script left it.
	Entries []sketch.Entry
	// Overlay is the last overlay drawn while sketching.
	Overlay  overlay.Scene
	Warnings []EvalWarning
}

// Engine evaluates sketch scripts. It is safe for concurrent use; each
// call to Evaluate runs against a fresh session and sandbox.
type Engine struct {
	cfg config.Config

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an engine whose sessions use cfg.
func NewEngine(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate runs source against a new session.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	cam := projector.NewPerspectiveCamera(800, 600)
	d := &driver{s: session.New(e.cfg, cam), warned: make(map[sketch.ID]bool)}

	if strings.TrimSpace(source) == "" {
		return d.result(), nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, d)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return d.result(), nil, nil
}

// driver feeds script commands into a session as frames.
type driver struct {
	s        *session.Session
	last     overlay.Scene
	warnings []EvalWarning
	warned   map[sketch.ID]bool
}

// tick runs one frame and records what it produced.
func (d *driver) tick(in session.Input) session.Output {
	out := d.s.Tick(in)
	if d.s.Mode() == mode.Sketching {
		d.last = out.Overlay
	}
	if !out.Committed.IsZero() {
		for _, w := range sketch.Check(d.s.Store()) {
			if !d.warned[w.ID] {
				d.warned[w.ID] = true
				d.warnings = append(d.warnings, EvalWarning{Message: w.Message, ID: w.ID})
			}
		}
	}
	return out
}

func (d *driver) result() *Result {
	return &Result{
		Scene:    d.s.SceneSolids(),
		Extruded: d.s.Extruded(),
		Entries:  d.s.Store().Entries(),
		Overlay:  d.last,
		Warnings: d.warnings,
	}
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalErrors, pulling out
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
