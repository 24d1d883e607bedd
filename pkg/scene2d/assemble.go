package scene2d

import (
	"math"
	"sort"
	"time"

	"github.com/ChicagoDave/massing/pkg/box"
)

// Assemble2D projects the boxes onto the ground plane. Footprints are ordered
// bottom-up by elevation, then by id, so drawing them in order paints upper
// boxes over the ones they stand on.
func Assemble2D(name string, boxes []box.Box) *Scene2D {
	s := &Scene2D{
		Metadata: Metadata{
			Name:        name,
			BoxCount:    len(boxes),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Footprints: make([]Footprint2D, 0, len(boxes)),
		Summary:    Summary{ByKind: make(map[string]KindSum)},
	}

	for _, b := range boxes {
		fp := assembleFootprint(b)
		s.Footprints = append(s.Footprints, fp)

		sum := s.Summary.ByKind[fp.Kind]
		sum.Count++
		sum.AreaM2 += fp.AreaM2
		s.Summary.ByKind[fp.Kind] = sum
		s.Summary.TotalAreaM2 += fp.AreaM2
	}

	sort.SliceStable(s.Footprints, func(i, j int) bool {
		a, b := s.Footprints[i], s.Footprints[j]
		if a.Elevation != b.Elevation {
			return a.Elevation < b.Elevation
		}
		return a.ID < b.ID
	})
	s.Metadata.Extent = assembleExtent(s.Footprints)
	return s
}

func assembleFootprint(b box.Box) Footprint2D {
	poly := b.WorldFootprint()
	pts := make([][2]float64, len(poly.Vertices))
	for i, v := range poly.Vertices {
		pts[i] = [2]float64{v.X, v.Z}
	}

	area := 0.0
	if !poly.IsEmpty() {
		area = poly.Area()
	}
	bounds := box.Compute(b)

	return Footprint2D{
		ID:        b.ID,
		Kind:      string(b.Kind),
		Center:    [2]float64{b.Position.X, b.Position.Z},
		Polygon:   pts,
		Rotation:  b.RotationY,
		AreaM2:    area,
		Elevation: bounds.MinY,
		Height:    b.Height(),
	}
}

// assembleExtent returns [min, max] over every polygon vertex and center, or
// zeros for an empty plan.
func assembleExtent(fps []Footprint2D) [2][2]float64 {
	if len(fps) == 0 {
		return [2][2]float64{}
	}
	mn := [2]float64{math.Inf(1), math.Inf(1)}
	mx := [2]float64{math.Inf(-1), math.Inf(-1)}
	grow := func(p [2]float64) {
		for k := 0; k < 2; k++ {
			mn[k] = math.Min(mn[k], p[k])
			mx[k] = math.Max(mx[k], p[k])
		}
	}
	for _, fp := range fps {
		grow(fp.Center)
		for _, p := range fp.Polygon {
			grow(p)
		}
	}
	return [2][2]float64{mn, mx}
}
