package sketch

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// ID identifies a committed primitive for the lifetime of a sketch session.
type ID uuid.UUID

// NewID returns a fresh random ID.
func NewID() ID { return ID(uuid.New()) }

// ZeroID is the unset identifier.
var ZeroID ID

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool { return id == ZeroID }

func (id ID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID in its canonical UUID form.
func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *ID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseID parses the string form produced by String.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ZeroID, fmt.Errorf("sketch: parse id: %w", err)
	}
	return ID(u), nil
}

// Short returns the first eight hex characters, for logs and part names.
func (id ID) Short() string { return id.String()[:8] }

// Kind enumerates the primitive variants.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name so JSON payloads stay readable.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Primitive is a 2D shape on the sketch plane. The set of implementations
// is closed: Line, Circle and Rectangle.
type Primitive interface {
	Kind() Kind
	primitive() // marker method restricting implementations to this package
}

// Line is a segment between two points on the plane.
type Line struct {
	P1 r3.Vec `json:"p1"`
	P2 r3.Vec `json:"p2"`
}

func (Line) Kind() Kind { return KindLine }
func (Line) primitive() {}

// Circle is a circle on the plane. Radius is never negative.
type Circle struct {
	Center r3.Vec  `json:"center"`
	Radius float64 `json:"radius"`
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) primitive() {}

// Rectangle is an axis-aligned rectangle given by two opposite corners.
type Rectangle struct {
	P1 r3.Vec `json:"p1"`
	P2 r3.Vec `json:"p2"`
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Rectangle) primitive() {}

// NewLine returns the line from a to b.
func NewLine(a, b r3.Vec) Line { return Line{P1: a, P2: b} }

// NewCircle returns the circle centered at a passing through b.
func NewCircle(a, b r3.Vec) Circle {
	return Circle{Center: a, Radius: r3.Norm(r3.Sub(b, a))}
}

// NewRectangle returns the rectangle with opposite corners a and b.
func NewRectangle(a, b r3.Vec) Rectangle { return Rectangle{P1: a, P2: b} }
