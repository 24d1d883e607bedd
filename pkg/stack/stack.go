// Package stack resolves "place on top": the vertical position that rests a
// box on whatever it overlaps in the XZ plane.
package stack

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

// pad widens index rectangles so that touching and zero-width boxes still
// intersect in the tree. Exact overlap is re-checked on the candidates.
const pad = 1e-6

// Result is the outcome of a stack resolution.
type Result struct {
	NextY float64 `json:"next_y"`
	// Top is the surface the box rests on; 0 is the ground plane.
	Top float64 `json:"top"`
	// Support lists the ids of the boxes that determined Top.
	Support []string `json:"support,omitempty"`
}

// Index is an XZ index over box bounds. Build it once per gesture when the
// entity list does not change between resolutions.
type Index struct {
	tree  *rtreego.Rtree
	loose []*entry
}

type entry struct {
	id     string
	bounds box.Bounds
	rect   rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// NewIndex indexes the current bounds of every box. Boxes whose bounds cannot
// form a rectangle (NaN or infinite coordinates) are kept aside and checked
// linearly.
func NewIndex(boxes []box.Box) *Index {
	idx := &Index{}
	objs := make([]rtreego.Spatial, 0, len(boxes))
	for _, b := range boxes {
		e := &entry{id: b.ID, bounds: box.Compute(b)}
		if !finite(e.bounds) {
			idx.loose = append(idx.loose, e)
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{e.bounds.MinX - pad, e.bounds.MinZ - pad},
			[]float64{e.bounds.MaxX - e.bounds.MinX + 2*pad, e.bounds.MaxZ - e.bounds.MinZ + 2*pad},
		)
		if err != nil {
			idx.loose = append(idx.loose, e)
			continue
		}
		e.rect = rect
		objs = append(objs, e)
	}
	idx.tree = rtreego.NewTree(2, 25, 50, objs...)
	return idx
}

// overlapping returns the entries whose bounds overlap q in XZ, inclusive.
func (idx *Index) overlapping(q box.Bounds) []*entry {
	if !finite(q) {
		return nil
	}
	var out []*entry
	rect, err := rtreego.NewRect(
		rtreego.Point{q.MinX - pad, q.MinZ - pad},
		[]float64{q.MaxX - q.MinX + 2*pad, q.MaxZ - q.MinZ + 2*pad},
	)
	if err == nil {
		for _, s := range idx.tree.SearchIntersect(rect) {
			e := s.(*entry)
			if q.OverlapsXZ(e.bounds) {
				out = append(out, e)
			}
		}
	}
	for _, e := range idx.loose {
		if q.OverlapsXZ(e.bounds) {
			out = append(out, e)
		}
	}
	return out
}

// Hit is an indexed box returned by Query.
type Hit struct {
	ID     string
	Bounds box.Bounds
}

// Query returns the indexed boxes whose bounds overlap q in XZ, touching
// edges included, ordered by id.
func (idx *Index) Query(q box.Bounds) []Hit {
	entries := idx.overlapping(q)
	out := make([]Hit, len(entries))
	for i, e := range entries {
		out[i] = Hit{ID: e.id, Bounds: e.bounds}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve computes where selected comes to rest when placed at pos with
// rotation rotY: the highest MaxY among the other boxes it overlaps, never
// below the ground plane at 0, plus half its own height.
func (idx *Index) Resolve(selectedID string, selected box.Box, pos geo.Vec3, rotY float64) Result {
	moving := box.ComputeAt(selected, pos, rotY)

	res := Result{}
	for _, e := range idx.overlapping(moving) {
		if e.id == selectedID {
			continue
		}
		switch {
		case e.bounds.MaxY > res.Top:
			res.Top = e.bounds.MaxY
			res.Support = []string{e.id}
		case e.bounds.MaxY == res.Top:
			res.Support = append(res.Support, e.id)
		}
	}
	sort.Strings(res.Support)
	res.NextY = res.Top + selected.Height()/2
	return res
}

// ResolveTop is the one-shot form of Index.Resolve over boxes.
func ResolveTop(selectedID string, selected box.Box, pos geo.Vec3, rotY float64, boxes []box.Box) Result {
	return NewIndex(boxes).Resolve(selectedID, selected, pos, rotY)
}

func finite(b box.Bounds) bool {
	for _, v := range [4]float64{b.MinX, b.MaxX, b.MinZ, b.MaxZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
