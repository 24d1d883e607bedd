package validation

import (
	"fmt"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/stack"
)

// penetration is how deep two boxes may overlap before it is reported.
const penetration = 1e-6

// ValidateLayout performs spatial checks on the converted boxes: boxes that
// sink below the ground plane and boxes that interpenetrate. Touching faces
// are fine.
func ValidateLayout(boxes []box.Box) *Report {
	r := NewReport()
	idx := stack.NewIndex(boxes)

	for i, b := range boxes {
		bounds := box.Compute(b)
		if bounds.MinY < -penetration {
			r.AddWarning(Result{
				Level:       LevelSpatial,
				Message:     fmt.Sprintf("box %q extends %.2f below the ground plane", b.ID, -bounds.MinY),
				Path:        fmt.Sprintf("boxes[%d].position", i),
				ActualValue: bounds.MinY,
				Expected:    ">= 0",
			})
		}

		for _, h := range idx.Query(bounds) {
			// each pair once
			if h.ID <= b.ID {
				continue
			}
			if intersects(bounds, h.Bounds) {
				r.AddWarning(Result{
					Level:        LevelSpatial,
					Message:      fmt.Sprintf("boxes %q and %q intersect", b.ID, h.ID),
					Path:         fmt.Sprintf("boxes[%d]", i),
					ConflictWith: h.ID,
					Suggestions:  []string{"Use go-on-top to rest one box on the other"},
				})
			}
		}
	}

	r.AddInfo(Result{
		Level:   LevelSpatial,
		Message: fmt.Sprintf("%d boxes checked", len(boxes)),
	})
	return r
}

func intersects(a, b box.Bounds) bool {
	return a.MaxX-b.MinX > penetration && b.MaxX-a.MinX > penetration &&
		a.MaxZ-b.MinZ > penetration && b.MaxZ-a.MinZ > penetration &&
		a.MaxY-b.MinY > penetration && b.MaxY-a.MinY > penetration
}
