// Package sketch defines the 2D primitives drawn on the ground plane and
// the Store that owns them between the construction and extrusion steps.
package sketch
