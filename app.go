package main

import (
	"context"
	"log"
	"sync"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/engine"
	"github.com/chazu/quillcad/pkg/extrude"
	"github.com/chazu/quillcad/pkg/kernel"
	"github.com/chazu/quillcad/pkg/kernel/polymesh"
	"github.com/chazu/quillcad/pkg/kernel/sdfx"
	"github.com/chazu/quillcad/pkg/mode"
	"github.com/chazu/quillcad/pkg/overlay"
	"github.com/chazu/quillcad/pkg/projector"
	"github.com/chazu/quillcad/pkg/session"
	"github.com/chazu/quillcad/pkg/sketch"
	"github.com/chazu/quillcad/pkg/tessellate"
	"gonum.org/v1/gonum/spatial/r3"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#B3B3B3", "#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings. Wails may call bindings from several goroutines, so every
// method holds mu while it touches the session.
type App struct {
	ctx    context.Context
	cfg    config.Config
	engine *engine.Engine
	kernel kernel.Kernel

	mu      sync.Mutex
	camera  *projector.PerspectiveCamera
	session *session.Session
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	UVs      []float32 `json:"uvs,omitempty"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// ErrorData is a JSON-serializable error or warning for the frontend.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// CameraData mirrors the viewport camera.
type CameraData struct {
	Eye    r3.Vec  `json:"eye"`
	Target r3.Vec  `json:"target"`
	Up     r3.Vec  `json:"up"`
	FOV    float64 `json:"fov"`
	Orbit  string  `json:"orbit"`
}

// EntryData is one sketch store entry.
type EntryData struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Primitive sketch.Primitive `json:"primitive"`
	Selected  bool             `json:"selected"`
	Hidden    bool             `json:"hidden"`
}

// StateData is a snapshot of the session for the side panel.
type StateData struct {
	Mode            string      `json:"mode"`
	Tool            string      `json:"tool"`
	ExtrudeDistance float64     `json:"extrudeDistance"`
	Anchor          *r3.Vec     `json:"anchor,omitempty"`
	Camera          CameraData  `json:"camera"`
	Entries         []EntryData `json:"entries"`
}

// FrameInput is what the frontend reports each animation frame.
//
// OverUI is set while the pointer is over a panel or widget. Camera, when
// set, replaces the backend camera pose since the frontend owns orbit and
// zoom.
type FrameInput struct {
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	HasCursor bool        `json:"hasCursor"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	OverUI    bool        `json:"overUI"`
	Primary   bool        `json:"primary"`
	Secondary bool        `json:"secondary"`
	Camera    *CameraData `json:"camera,omitempty"`
}

// FrameResult is what one frame produced.
type FrameResult struct {
	Meshes   []MeshData       `json:"meshes"`
	Overlay  overlay.Scene    `json:"overlay"`
	Preview  sketch.Primitive `json:"preview,omitempty"`
	Anchor   *ScreenPoint     `json:"anchor,omitempty"`
	Warnings []ErrorData      `json:"warnings"`
	Errors   []ErrorData      `json:"errors"`
}

// ScreenPoint is a viewport position in pixels, used to draw the pending
// anchor marker.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneResult lists every mesh the 3D view should show.
type SceneResult struct {
	Meshes []MeshData  `json:"meshes"`
	Errors []ErrorData `json:"errors"`
}

// ScriptResult is the result of RunScript.
type ScriptResult struct {
	Meshes   []MeshData    `json:"meshes"`
	Overlay  overlay.Scene `json:"overlay"`
	Errors   []ErrorData   `json:"errors"`
	Warnings []ErrorData   `json:"warnings"`
}

// NewApp creates an App for cfg with the configured kernel.
func NewApp(cfg config.Config) *App {
	cam := projector.NewPerspectiveCamera(1280, 800)
	return &App{
		cfg:     cfg,
		engine:  engine.NewEngine(cfg),
		kernel:  newKernel(cfg),
		camera:  cam,
		session: session.New(cfg, cam),
	}
}

func newKernel(cfg config.Config) kernel.Kernel {
	if cfg.Kernel == config.KernelSDFX {
		return sdfx.New(cfg.MeshCells)
	}
	return polymesh.New()
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// StartSketch enters sketch mode.
func (a *App) StartSketch() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.StartSketch()
}

// FinishSketch returns to view mode.
func (a *App) FinishSketch() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.FinishSketch()
}

// SetTool selects a tool by name: line, circle, rectangle or select.
func (a *App) SetTool(name string) error {
	t, err := mode.ParseTool(name)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.SetTool(t)
}

// SetExtrudeDistance sets the distance used by the next Extrude.
func (a *App) SetExtrudeDistance(d float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.SetExtrudeDistance(d)
}

// Extrude queues an extrusion of the selection. The solids arrive with
// the next Frame.
func (a *App) Extrude() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.ExtrudeNow()
}

// Frame runs one session tick with the frontend's input.
func (a *App) Frame(in FrameInput) FrameResult {
	result := FrameResult{
		Meshes:   []MeshData{},
		Warnings: []ErrorData{},
		Errors:   []ErrorData{},
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if in.Width > 0 && in.Height > 0 {
		a.camera.Width, a.camera.Height = in.Width, in.Height
	}
	if in.Camera != nil {
		a.camera.LookAt(in.Camera.Eye, in.Camera.Target, in.Camera.Up)
		if in.Camera.FOV > 0 {
			a.camera.FOV = in.Camera.FOV
		}
	}

	cursor := projector.NoCursor
	if in.HasCursor {
		cursor = projector.At(in.X, in.Y)
	}
	out := a.session.Tick(session.Input{
		Frame:            projector.Frame{Cursor: cursor, Camera: a.camera, PointerCaptured: in.OverUI},
		PrimaryPressed:   in.Primary,
		SecondaryPressed: in.Secondary,
	})

	result.Overlay = out.Overlay
	result.Preview = out.Preview
	if p, ok := a.session.Anchor(); ok {
		if x, y, visible := a.camera.WorldToViewport(p); visible {
			result.Anchor = &ScreenPoint{X: x, Y: y}
		}
	}
	if len(out.Solids) > 0 {
		meshes, err := a.meshes(out.Solids, len(a.session.Extruded())-len(out.Solids)+1)
		if err != nil {
			log.Printf("Frame tessellate error: %v", err)
			result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
		}
		result.Meshes = meshes
	}
	for _, w := range sketch.Check(a.session.Store()) {
		result.Warnings = append(result.Warnings, ErrorData{Message: w.String()})
	}
	return result
}

// Scene returns meshes for everything the 3D view should show.
func (a *App) Scene() SceneResult {
	result := SceneResult{Meshes: []MeshData{}, Errors: []ErrorData{}}

	a.mu.Lock()
	solids := a.session.SceneSolids()
	a.mu.Unlock()

	// Palette slot 0 belongs to the main cube; extrusion n gets slot n+1.
	first := 1
	if len(solids) > 0 && solids[0].Name == session.MainCubeName {
		first = 0
	}
	meshes, err := a.meshes(solids, first)
	if err != nil {
		log.Printf("Scene tessellate error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.Meshes = meshes
	return result
}

// State returns a snapshot of the session.
func (a *App) State() StateData {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := StateData{
		Mode:            a.session.Mode().String(),
		Tool:            a.session.Tool().String(),
		ExtrudeDistance: a.session.ExtrudeDistance(),
		Camera: CameraData{
			Eye:    a.camera.Eye,
			Target: a.camera.Target,
			Up:     a.camera.Up,
			FOV:    a.camera.FOV,
			Orbit:  a.camera.Orbit.String(),
		},
		Entries: []EntryData{},
	}
	if p, ok := a.session.Anchor(); ok {
		st.Anchor = &p
	}
	for _, e := range a.session.Store().Entries() {
		st.Entries = append(st.Entries, EntryData{
			ID:        e.ID.String(),
			Kind:      e.Primitive.Kind().String(),
			Primitive: e.Primitive,
			Selected:  e.Selected,
			Hidden:    e.Hidden,
		})
	}
	return st
}

// RunScript evaluates a sketch script in a scratch session and returns
// its scene. The interactive session is not touched.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{
		Meshes:   []MeshData{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("RunScript fatal error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, ErrorData{Message: w.ID.Short() + ": " + w.Message})
	}
	result.Overlay = res.Overlay

	meshes, err := a.meshes(res.Scene, 0)
	if err != nil {
		log.Printf("RunScript tessellate error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.Meshes = meshes
	return result
}

// meshes tessellates results and colors them from the palette, starting
// at palette index first.
func (a *App) meshes(results []extrude.Result, first int) ([]MeshData, error) {
	ms, err := tessellate.Tessellate(results, a.kernel, tessellate.WithSegments(a.cfg.CylinderSegments))
	if err != nil {
		return []MeshData{}, err
	}
	out := make([]MeshData, 0, len(ms))
	for i, m := range ms {
		out = append(out, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			UVs:      m.UVs,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[(first+i)%len(colorPalette)],
		})
	}
	return out, nil
}
