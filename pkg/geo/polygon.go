package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Rect returns an axis-aligned width x depth rectangle centered at the origin,
// counterclockwise.
func Rect(width, depth float64) Polygon {
	hw, hd := width/2, depth/2
	return NewPolygon(Pt(-hw, -hd), Pt(hw, -hd), Pt(hw, hd), Pt(-hw, hd))
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Z
		area -= p.Vertices[j].X * p.Vertices[i].Z
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Transform rotates every vertex by angle around the origin, then translates
// by offset. The receiver is not modified.
func (p Polygon) Transform(angle float64, offset Point2D) Polygon {
	out := make([]Point2D, len(p.Vertices))
	c, s := math.Cos(angle), math.Sin(angle)
	for i, v := range p.Vertices {
		out[i] = Point2D{
			X: v.X*c - v.Z*s + offset.X,
			Z: v.X*s + v.Z*c + offset.Z,
		}
	}
	return Polygon{Vertices: out}
}

// ScaleXZ returns a copy with X multiplied by sx and Z by sz.
func (p Polygon) ScaleXZ(sx, sz float64) Polygon {
	out := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.ScaleXZ(sx, sz)
	}
	return Polygon{Vertices: out}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	if len(p.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Z < minP.Z {
			minP.Z = v.Z
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Z > maxP.Z {
			maxP.Z = v.Z
		}
	}
	return minP, maxP
}
