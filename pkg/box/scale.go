package box

import "github.com/ChicagoDave/massing/pkg/geo"

// ApplyScale folds a per-axis scale factor into the box geometry. It returns
// the input unchanged with didScale=false for the exact identity scale, and
// for boxes that have no shape to scale.
//
// Callers must reset the gizmo scale to identity after committing the result,
// otherwise the next drag compounds on top of the stored geometry.
func ApplyScale(b Box, scale geo.Vec3) (Box, bool) {
	if scale.IsOne() {
		return b, false
	}

	switch s := b.Shape.(type) {
	case Footprint:
		h := s.Height
		if h <= 0 {
			h = 1
		}
		b.Shape = Footprint{
			Points: geo.Polygon{Vertices: s.Points}.ScaleXZ(scale.X, scale.Z).Vertices,
			Height: h * scale.Y,
		}
	case Extent:
		b.Shape = Extent{Size: geo.Vec3{
			X: s.Size.X * scale.X,
			Y: s.Size.Y * scale.Y,
			Z: s.Size.Z * scale.Z,
		}}
	default:
		return b, false
	}
	return b, true
}
