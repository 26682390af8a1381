package main

import (
	"math"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/kernel/sdfx"
	"github.com/chazu/quillcad/pkg/session"
)

func newApp() *App {
	return NewApp(config.Default())
}

// TestE2EDemoScript exercises the full pipeline: script → engine →
// session → tessellate → meshes. This is the same path the RunScript
// binding takes, without the Wails runtime.
func TestE2EDemoScript(t *testing.T) {
	source, err := os.ReadFile("examples/demo.quill")
	if err != nil {
		t.Fatalf("failed to read demo.quill: %v", err)
	}

	result := newApp().RunScript(string(source))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Main cube plus rectangle, circle and line extrusions.
	if len(result.Meshes) != 4 {
		t.Fatalf("expected 4 meshes, got %d", len(result.Meshes))
	}
	prefixes := []string{session.MainCubeName, "rectangle-", "circle-", "line-"}
	for i, m := range result.Meshes {
		if !strings.HasPrefix(m.PartName, prefixes[i]) {
			t.Errorf("mesh %d: part name %q, want prefix %q", i, m.PartName, prefixes[i])
		}
		if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
			t.Errorf("part %q: empty geometry", m.PartName)
		}
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	result := newApp().RunScript("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 1 || result.Meshes[0].PartName != session.MainCubeName {
		t.Errorf("expected only the main cube, got %d meshes", len(result.Meshes))
	}
	// JSON should serialize as [] not null.
	if result.Errors == nil || result.Warnings == nil {
		t.Error("Errors and Warnings should be non-nil empty slices")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	result := newApp().RunScript("(start-sketch)\n(click 1")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2EDegenerateWarning ensures degenerate primitives are committed
// and reported, and that extruding them yields empty meshes, not errors.
func TestE2EDegenerateWarning(t *testing.T) {
	result := newApp().RunScript(`
(start-sketch)
(tool :circle)
(click 2 2)
(click 2 2)
(select-at 2 2)
(extrude :distance 1)
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "zero radius") {
		t.Errorf("warnings = %v, want one zero radius warning", result.Warnings)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh while sketching, got %d", len(result.Meshes))
	}
	if len(result.Meshes[0].Vertices) != 0 {
		t.Error("zero radius cylinder should tessellate to an empty mesh")
	}
}

// TestE2ESDFXKernel runs a short script through the sdfx backend.
func TestE2ESDFXKernel(t *testing.T) {
	if testing.Short() {
		t.Skip("marching cubes is slow")
	}
	cfg := config.Default()
	cfg.Kernel = config.KernelSDFX
	cfg.MeshCells = 40
	app := NewApp(cfg)
	if _, ok := app.kernel.(*sdfx.SdfxKernel); !ok {
		t.Fatalf("kernel is %T, want sdfx", app.kernel)
	}

	result := app.RunScript(`
(start-sketch)
(tool :rectangle)
(click 0 0) (click 2 2)
(select-at 1 1)
(extrude :distance 1)
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 || len(result.Meshes[0].Vertices) == 0 {
		t.Fatalf("expected one non-empty mesh, got %+v", result.Meshes)
	}
}

// TestE2EColorPaletteWrapping ensures every part gets a color even when
// the scene outgrows the palette.
func TestE2EColorPaletteWrapping(t *testing.T) {
	var b strings.Builder
	b.WriteString("(start-sketch)\n(tool :rectangle)\n")
	for i := 0; i < len(colorPalette)+3; i++ {
		x := float64(i * 3)
		b.WriteString("(click " + ftoa(x) + " 0) (click " + ftoa(x+1) + " 1)\n")
		b.WriteString("(select-at " + ftoa(x+0.5) + " 0.5) (extrude :distance 1)\n")
	}
	b.WriteString("(finish-sketch)\n")

	result := newApp().RunScript(b.String())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != len(colorPalette)+4 {
		t.Fatalf("expected %d meshes, got %d", len(colorPalette)+4, len(result.Meshes))
	}
	for _, m := range result.Meshes {
		if m.Color == "" {
			t.Errorf("mesh %q should have a color assigned", m.PartName)
		}
	}
	if result.Meshes[1].Color == result.Meshes[2].Color {
		t.Error("neighbouring parts should get different colors")
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TestInteractiveFrames drives the bindings the way the frontend does:
// commands between frames, one Frame call per animation frame.
func TestInteractiveFrames(t *testing.T) {
	app := newApp()
	if err := app.SetTool("circle"); err == nil {
		t.Error("SetTool before StartSketch should fail")
	}
	if err := app.StartSketch(); err != nil {
		t.Fatal(err)
	}

	st := app.State()
	if st.Mode != "sketching" || st.Camera.Orbit != "middle" {
		t.Errorf("state after start = %+v", st)
	}

	// The sketch camera looks straight down at the origin, so the
	// viewport center projects onto it.
	center := FrameInput{X: 400, Y: 300, HasCursor: true, Width: 800, Height: 600}
	press := center
	press.Primary = true

	if err := app.SetTool("rect"); err != nil {
		t.Fatal(err)
	}
	res := app.Frame(press)
	if app.State().Anchor == nil {
		t.Fatal("first press should set the anchor")
	}
	if res.Anchor == nil || math.Abs(res.Anchor.X-400) > 1e-6 || math.Abs(res.Anchor.Y-300) > 1e-6 {
		t.Errorf("anchor marker = %+v, want (400,300)", res.Anchor)
	}

	corner := press
	corner.X, corner.Y = 500, 400
	app.Frame(corner)
	st = app.State()
	if len(st.Entries) != 1 || st.Entries[0].Kind != "rectangle" {
		t.Fatalf("entries = %+v, want one rectangle", st.Entries)
	}

	// Clicks over the side panel are ignored.
	overUI := press
	overUI.OverUI = true
	app.Frame(overUI)
	if app.State().Anchor != nil {
		t.Error("press over the UI should not start a gesture")
	}

	if err := app.SetTool("select"); err != nil {
		t.Fatal(err)
	}
	app.Frame(press)
	if !app.State().Entries[0].Selected {
		t.Fatal("press on the rectangle corner should select it")
	}

	app.SetExtrudeDistance(2)
	if err := app.Extrude(); err != nil {
		t.Fatal(err)
	}
	res = app.Frame(center)
	if len(res.Errors) > 0 {
		t.Fatalf("frame errors: %v", res.Errors)
	}
	if len(res.Meshes) != 1 || !strings.HasPrefix(res.Meshes[0].PartName, "rectangle-") {
		t.Fatalf("frame meshes = %+v, want one rectangle mesh", res.Meshes)
	}

	if err := app.FinishSketch(); err != nil {
		t.Fatal(err)
	}
	st = app.State()
	if st.Mode != "viewing" || len(st.Entries) != 0 || st.ExtrudeDistance != 0 {
		t.Errorf("state after finish = %+v", st)
	}
	scene := app.Scene()
	if len(scene.Meshes) != 2 {
		t.Errorf("scene has %d meshes, want cube and box", len(scene.Meshes))
	}
}
