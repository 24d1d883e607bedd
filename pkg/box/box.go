// Package box holds the box entity model and the pure geometry computed
// from it: rotated bounds and scale application.
package box

import "github.com/ChicagoDave/massing/pkg/geo"

// Kind identifies the variant of a box entity.
type Kind string

const (
	KindBuilding Kind = "building"
	KindRoom     Kind = "room"
	KindGeneric  Kind = "generic"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBuilding, KindRoom, KindGeneric:
		return true
	}
	return false
}

// Shape is the geometry of a box: either a Footprint or an Extent.
type Shape interface {
	isShape()
}

// Footprint is a polygon in the box's local XZ frame extruded to Height.
// A zero Height means unset.
type Footprint struct {
	Points []geo.Point2D
	Height float64
}

// Extent is an axis-aligned width (X), height (Y), depth (Z) centered at the
// origin.
type Extent struct {
	Size geo.Vec3
}

func (Footprint) isShape() {}
func (Extent) isShape()    {}

// Box is an immutable value. Mutations produce a new Box that replaces the old
// one in the entity list.
type Box struct {
	ID        string
	Kind      Kind
	Position  geo.Vec3
	RotationY float64
	Shape     Shape

	// Vertices are optional mesh points; their XZ projection stands in for a
	// footprint when Shape is not a Footprint.
	Vertices []geo.Vec3
}

// WithPosition returns a copy of b at p.
func (b Box) WithPosition(p geo.Vec3) Box {
	b.Position = p
	return b
}

// WithRotation returns a copy of b rotated to angle radians about Y.
func (b Box) WithRotation(angle float64) Box {
	b.RotationY = angle
	return b
}

// Find returns the index of the box with the given id, or -1.
func Find(boxes []Box, id string) int {
	for i := range boxes {
		if boxes[i].ID == id {
			return i
		}
	}
	return -1
}

// footprint resolves the local polygon: explicit footprint, then the vertex
// projection, then a rectangle from the extent (1x1 when nothing is set).
func (b Box) footprint() geo.Polygon {
	if fp, ok := b.Shape.(Footprint); ok {
		return geo.Polygon{Vertices: fp.Points}
	}
	if len(b.Vertices) > 0 {
		pts := make([]geo.Point2D, len(b.Vertices))
		for i, v := range b.Vertices {
			pts[i] = v.XZ()
		}
		return geo.Polygon{Vertices: pts}
	}
	if ext, ok := b.Shape.(Extent); ok {
		return geo.Rect(ext.Size.X, ext.Size.Z)
	}
	return geo.Rect(1, 1)
}

// WorldFootprint returns the footprint polygon rotated by RotationY and
// placed at the box position.
func (b Box) WorldFootprint() geo.Polygon {
	return b.footprint().Transform(b.RotationY, b.Position.XZ())
}

// Height resolves the vertical size of the box. Buildings and rooms carry
// their height on the footprint; extents use Size.Y. Defaults to 1.
func (b Box) Height() float64 {
	switch s := b.Shape.(type) {
	case Footprint:
		if s.Height > 0 {
			return s.Height
		}
	case Extent:
		return s.Size.Y
	}
	return 1
}
