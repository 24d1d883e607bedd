package box

import "github.com/ChicagoDave/massing/pkg/geo"

// Bounds is the world-space axis-aligned envelope of a possibly rotated box:
// an XZ rectangle around the rotated footprint plus a vertical span.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// HalfX returns half the X extent.
func (b Bounds) HalfX() float64 { return (b.MaxX - b.MinX) / 2 }

// HalfZ returns half the Z extent.
func (b Bounds) HalfZ() float64 { return (b.MaxZ - b.MinZ) / 2 }

// MidX returns the X midpoint.
func (b Bounds) MidX() float64 { return (b.MinX + b.MaxX) / 2 }

// MidZ returns the Z midpoint.
func (b Bounds) MidZ() float64 { return (b.MinZ + b.MaxZ) / 2 }

// OverlapsXZ tests inclusive interval intersection in the XZ plane. Touching
// edges count as overlap.
func (b Bounds) OverlapsXZ(o Bounds) bool {
	return b.MaxX >= o.MinX && b.MinX <= o.MaxX &&
		b.MaxZ >= o.MinZ && b.MinZ <= o.MaxZ
}

// Compute returns the bounds of b at its stored position and rotation.
func Compute(b Box) Bounds {
	return ComputeAt(b, b.Position, b.RotationY)
}

// ComputeAt returns the bounds of b as if it sat at pos rotated by rotY.
// Height is never affected by rotation. NaN input propagates.
func ComputeAt(b Box, pos geo.Vec3, rotY float64) Bounds {
	fp := b.footprint()
	half := b.Height() / 2

	if fp.Len() == 0 {
		return Bounds{
			MinX: pos.X, MaxX: pos.X,
			MinZ: pos.Z, MaxZ: pos.Z,
			MinY: pos.Y - half, MaxY: pos.Y + half,
		}
	}

	mn, mx := fp.Transform(rotY, pos.XZ()).BoundingBox()
	return Bounds{
		MinX: mn.X, MaxX: mx.X,
		MinZ: mn.Z, MaxZ: mx.Z,
		MinY: pos.Y - half, MaxY: pos.Y + half,
	}
}
