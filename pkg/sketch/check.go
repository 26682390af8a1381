package sketch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Warning is an advisory finding about a committed primitive. Degenerate
// shapes are legal; warnings only surface them to the user.
type Warning struct {
	ID      ID
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("primitive %s: %s", w.ID.Short(), w.Message)
}

// Check reports degenerate primitives among the visible entries: zero
// length lines, zero radius circles and zero area rectangles. It never
// mutates the store.
func Check(s *Store) []Warning {
	var warnings []Warning
	for _, e := range s.Visible() {
		if msg := degenerate(e.Primitive); msg != "" {
			warnings = append(warnings, Warning{ID: e.ID, Message: msg})
		}
	}
	return warnings
}

func degenerate(p Primitive) string {
	switch v := p.(type) {
	case Line:
		if r3.Norm2(r3.Sub(v.P2, v.P1)) == 0 {
			return "line has zero length"
		}
	case Circle:
		if v.Radius == 0 {
			return "circle has zero radius"
		}
	case Rectangle:
		if v.P1.X == v.P2.X || v.P1.Z == v.P2.Z {
			return fmt.Sprintf("rectangle has zero area (%.4f x %.4f)",
				math.Abs(v.P2.X-v.P1.X), math.Abs(v.P2.Z-v.P1.Z))
		}
	}
	return ""
}
