package geo

// Vec3 is a world-space vector. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// One is the identity scale.
var One = Vec3{1, 1, 1}

// V3 is a shorthand constructor for Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// XZ drops the vertical component.
func (v Vec3) XZ() Point2D {
	return Point2D{X: v.X, Z: v.Z}
}

// IsOne reports whether v is exactly the identity scale.
func (v Vec3) IsOne() bool {
	return v.X == 1 && v.Y == 1 && v.Z == 1
}

// Array returns v as [x, y, z].
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// FromArray builds a Vec3 from [x, y, z].
func FromArray(a [3]float64) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
