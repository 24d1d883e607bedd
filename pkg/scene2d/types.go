package scene2d

// Scene2D is the top-down plan of the scene for an SVG renderer: every box's
// footprint in world XZ coordinates, drawn in Footprints order.
type Scene2D struct {
	Metadata   Metadata      `json:"metadata"`
	Footprints []Footprint2D `json:"footprints"`
	Summary    Summary       `json:"summary"`
}

// Metadata holds plan-level summary data.
type Metadata struct {
	Name     string `json:"name"`
	BoxCount int    `json:"box_count"`
	// Extent is the XZ rectangle [min, max] enclosing every footprint.
	Extent      [2][2]float64 `json:"extent"`
	GeneratedAt string        `json:"generated_at"`
}

// Footprint2D is one box seen from above.
type Footprint2D struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Center   [2]float64   `json:"center"`
	Polygon  [][2]float64 `json:"polygon"`
	Rotation float64      `json:"rotation"`
	AreaM2   float64      `json:"area_m2"`
	// Elevation is the bottom face height; Height the vertical size.
	Elevation float64 `json:"elevation"`
	Height    float64 `json:"height"`
}

// Summary holds aggregate footprint data.
type Summary struct {
	TotalAreaM2 float64            `json:"total_area_m2"`
	ByKind      map[string]KindSum `json:"by_kind"`
}

// KindSum is the aggregate for one box kind.
type KindSum struct {
	Count  int     `json:"count"`
	AreaM2 float64 `json:"area_m2"`
}
