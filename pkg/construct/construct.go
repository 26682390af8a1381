// Package construct implements the two-click gesture that commits sketch
// primitives: the first click drops an anchor, the second builds a
// primitive from the anchor and the new point under the active tool.
package construct

import (
	"github.com/chazu/quillcad/pkg/mode"
	"github.com/chazu/quillcad/pkg/sketch"
	"gonum.org/v1/gonum/spatial/r3"
)

// Build returns the primitive the tool makes from two clicks. The Select
// tool builds nothing.
func Build(tool mode.Tool, a, b r3.Vec) (sketch.Primitive, bool) {
	switch tool {
	case mode.ToolLine:
		return sketch.NewLine(a, b), true
	case mode.ToolCircle:
		return sketch.NewCircle(a, b), true
	case mode.ToolRectangle:
		return sketch.NewRectangle(a, b), true
	}
	return nil, false
}

// Constructor holds the pending anchor of a gesture. The zero value has no
// anchor and is ready to use.
type Constructor struct {
	anchor    r3.Vec
	hasAnchor bool
}

// Anchor returns the pending first click, if any.
func (c *Constructor) Anchor() (r3.Vec, bool) {
	return c.anchor, c.hasAnchor
}

// Primary handles a primary-button press at the projected point p. ok is
// false when projection failed this frame; the gesture then stays where
// it was. On the second click the anchor is cleared and the primitive is
// returned whether or not the tool could build one.
//
// The anchor survives tool changes, so a gesture started with one tool is
// finished with whichever tool is active at the second click.
func (c *Constructor) Primary(tool mode.Tool, p r3.Vec, ok bool) (sketch.Primitive, bool) {
	if !ok {
		return nil, false
	}
	if !c.hasAnchor {
		c.anchor, c.hasAnchor = p, true
		return nil, false
	}
	a := c.anchor
	c.Reset()
	return Build(tool, a, p)
}

// Cancel drops the pending anchor. It is a no-op without one.
func (c *Constructor) Cancel() {
	c.Reset()
}

// Reset clears all gesture state.
func (c *Constructor) Reset() {
	c.anchor, c.hasAnchor = r3.Vec{}, false
}

// Preview returns the primitive the gesture would commit if the second
// click landed at current. It is for display only and touches no state.
func (c *Constructor) Preview(tool mode.Tool, current r3.Vec) (sketch.Primitive, bool) {
	if !c.hasAnchor {
		return nil, false
	}
	return Build(tool, c.anchor, current)
}
