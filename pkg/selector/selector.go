// Package selector hit-tests sketch primitives against a point on the
// sketch plane and maintains the single selection in a sketch.Store.
package selector

import (
	"math"

	"github.com/chazu/quillcad/pkg/geom"
	"github.com/chazu/quillcad/pkg/sketch"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTolerance is the pick radius in world units.
const DefaultTolerance = 0.1

// HitTest returns the entry nearest to p within tol. Lines and circles
// compete on squared distance. Rectangles are tested last and count as a
// hit when p is inside their bounds or within tol of one of their four
// boundary lines; a rectangle hit scores zero, so it beats any line or
// circle with a nonzero residual, and the first rectangle hit beats the
// rest. Hidden entries are skipped.
func HitTest(entries []sketch.Entry, p r3.Vec, tol float64) (sketch.ID, bool) {
	tolSq := tol * tol
	best := math.MaxFloat64
	var hit sketch.ID
	found := false

	consider := func(e sketch.Entry, distSq float64) {
		if distSq < tolSq && distSq < best {
			best = distSq
			hit = e.ID
			found = true
		}
	}

	for _, e := range entries {
		if l, ok := e.Primitive.(sketch.Line); ok && !e.Hidden {
			consider(e, geom.PointSegmentDistanceSq(p, l.P1, l.P2))
		}
	}
	for _, e := range entries {
		if c, ok := e.Primitive.(sketch.Circle); ok && !e.Hidden {
			consider(e, geom.CircumferenceDistanceSq(p, c.Center, c.Radius))
		}
	}
	for _, e := range entries {
		r, ok := e.Primitive.(sketch.Rectangle)
		if !ok || e.Hidden {
			continue
		}
		b := geom.RectBounds(r.P1, r.P2)
		if (b.Contains(p) || b.NearBorder(p, tol)) && best > 0 {
			best = 0
			hit = e.ID
			found = true
		}
	}
	return hit, found
}

// Select hit-tests p against the store and makes the result the only
// selected entry. On a miss the selection is cleared.
func Select(s *sketch.Store, p r3.Vec, tol float64) (sketch.ID, bool) {
	id, ok := HitTest(s.Entries(), p, tol)
	if !ok {
		s.ClearSelection()
		return sketch.ZeroID, false
	}
	s.Select(id)
	return id, true
}
