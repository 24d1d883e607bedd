package validation

import (
	"fmt"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
	"github.com/ChicagoDave/massing/pkg/project"
)

// ValidateProject performs semantic validation on a parsed scene document.
// Structural problems are caught earlier by the schema check in
// project.Parse.
func ValidateProject(doc *project.Document) *Report {
	r := NewReport()

	validateBuilding(doc, r)
	validateBoxIDs(doc, r)
	for i, b := range doc.Boxes {
		validateBoxShape(i, b, r)
	}

	return r
}

func validateBuilding(doc *project.Document, r *Report) {
	if doc.Building == nil {
		r.AddInfo(Result{
			Level:   LevelSemantic,
			Message: "no building section; using default snapping options",
			Path:    "building",
		})
		return
	}
	o := doc.Building

	if o.SnapToGrid && o.GridSize <= 0 {
		r.AddError(Result{
			Level:       LevelSemantic,
			Message:     "grid_size must be greater than 0 when snap_to_grid is on",
			Path:        "building.grid_size",
			ActualValue: o.GridSize,
			Expected:    "> 0",
			Suggestions: []string{"Set grid_size, or turn snap_to_grid off"},
		})
	}
	if o.SnapDistance < 0 {
		r.AddError(Result{
			Level:       LevelSemantic,
			Message:     "snap_distance must be non-negative",
			Path:        "building.snap_distance",
			ActualValue: o.SnapDistance,
			Expected:    ">= 0",
		})
	}
	if o.SnapToObjects && o.SnapDistance == 0 {
		r.AddInfo(Result{
			Level:   LevelSemantic,
			Message: "snap_to_objects is on but snap_distance is 0; object snapping never triggers",
			Path:    "building.snap_distance",
		})
	}
}

func validateBoxIDs(doc *project.Document, r *Report) {
	seen := make(map[string]int, len(doc.Boxes))
	for i, b := range doc.Boxes {
		path := fmt.Sprintf("boxes[%d].id", i)
		if b.ID == "" {
			r.AddInfo(Result{
				Level:   LevelSemantic,
				Message: fmt.Sprintf("box at index %d has no id; one will be generated", i),
				Path:    path,
			})
			continue
		}
		if prev, ok := seen[b.ID]; ok {
			r.AddError(Result{
				Level:        LevelSemantic,
				Message:      fmt.Sprintf("duplicate box id %q at indices %d and %d", b.ID, prev, i),
				Path:         path,
				ActualValue:  b.ID,
				ConflictWith: fmt.Sprintf("boxes[%d].id", prev),
			})
			continue
		}
		seen[b.ID] = i
	}
}

func validateBoxShape(i int, b project.BoxDoc, r *Report) {
	path := fmt.Sprintf("boxes[%d]", i)

	if b.Type != "" && !box.Kind(b.Type).Valid() {
		r.AddError(Result{
			Level:       LevelSemantic,
			Message:     fmt.Sprintf("box %s has unknown type %q", label(i, b), b.Type),
			Path:        path + ".type",
			ActualValue: b.Type,
			Expected:    "building, room or generic",
		})
	}

	if b.Footprint != nil && b.Size != nil {
		r.AddError(Result{
			Level:        LevelSemantic,
			Message:      fmt.Sprintf("box %s has both footprint and size", label(i, b)),
			Path:         path + ".size",
			ConflictWith: path + ".footprint",
			Suggestions:  []string{"Keep footprint with height for polygons, or size for rectangular boxes"},
		})
	}

	if b.Footprint != nil {
		pts := make([]geo.Point2D, 0, len(b.Footprint))
		for _, p := range b.Footprint {
			pts = append(pts, geo.Pt(p[0], p[1]))
		}
		poly := geo.NewPolygon(pts...)
		switch {
		case poly.Len() == 0:
			r.AddWarning(Result{
				Level:   LevelSemantic,
				Message: fmt.Sprintf("box %s has an empty footprint; its bounds collapse to its position", label(i, b)),
				Path:    path + ".footprint",
			})
		case poly.IsEmpty():
			r.AddWarning(Result{
				Level:       LevelSemantic,
				Message:     fmt.Sprintf("box %s footprint has fewer than 3 points", label(i, b)),
				Path:        path + ".footprint",
				ActualValue: poly.Len(),
				Expected:    ">= 3 points",
			})
		case poly.Area() == 0:
			r.AddWarning(Result{
				Level:   LevelSemantic,
				Message: fmt.Sprintf("box %s footprint has zero area", label(i, b)),
				Path:    path + ".footprint",
			})
		}
	}

	if b.Height < 0 {
		r.AddError(Result{
			Level:       LevelSemantic,
			Message:     fmt.Sprintf("box %s height must be non-negative", label(i, b)),
			Path:        path + ".height",
			ActualValue: b.Height,
			Expected:    ">= 0",
		})
	}

	for axis, v := range b.Size {
		if v <= 0 {
			r.AddError(Result{
				Level:       LevelSemantic,
				Message:     fmt.Sprintf("box %s size[%d] must be greater than 0", label(i, b), axis),
				Path:        fmt.Sprintf("%s.size[%d]", path, axis),
				ActualValue: v,
				Expected:    "> 0",
			})
		}
	}
}

func label(i int, b project.BoxDoc) string {
	if b.ID != "" {
		return fmt.Sprintf("%q", b.ID)
	}
	return fmt.Sprintf("#%d", i)
}
