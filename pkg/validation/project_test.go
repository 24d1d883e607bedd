package validation

import (
	"testing"

	"github.com/ChicagoDave/massing/pkg/project"
	"github.com/ChicagoDave/massing/pkg/snap"
)

func validDoc() *project.Document {
	opts := snap.DefaultOptions()
	return &project.Document{
		Version:  "0.1.0",
		Name:     "test",
		Building: &opts,
		Boxes: []project.BoxDoc{
			{ID: "a", Type: "building", Position: []float64{0, 1, 0}, Footprint: [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}, Height: 2},
			{ID: "b", Type: "room", Position: []float64{3, 0.5, 0}, Size: []float64{2, 1, 2}},
		},
	}
}

func TestValidateProjectValid(t *testing.T) {
	r := ValidateProject(validDoc())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateProjectDemo(t *testing.T) {
	doc, err := project.LoadProject("../../examples/demo")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	r := ValidateProject(doc)
	if !r.Valid {
		t.Errorf("expected demo project to be valid, got %v", r.Errors)
	}
}

func TestValidateProjectGridSize(t *testing.T) {
	d := validDoc()
	d.Building.GridSize = 0
	r := ValidateProject(d)
	if r.Valid {
		t.Error("expected invalid report for grid_size=0")
	}
	assertHasError(t, r, "building.grid_size")

	d.Building.SnapToGrid = false
	if r := ValidateProject(d); !r.Valid {
		t.Errorf("grid_size is irrelevant with snap_to_grid off, got %v", r.Errors)
	}
}

func TestValidateProjectSnapDistance(t *testing.T) {
	d := validDoc()
	d.Building.SnapDistance = -1
	assertHasError(t, ValidateProject(d), "building.snap_distance")

	d.Building.SnapDistance = 0
	r := ValidateProject(d)
	if !r.Valid || len(r.Info) != 1 {
		t.Errorf("expected a single info note for snap_distance=0, got %v / %v", r.Errors, r.Info)
	}
}

func TestValidateProjectDefaultsNote(t *testing.T) {
	d := validDoc()
	d.Building = nil
	r := ValidateProject(d)
	if !r.Valid || len(r.Info) != 1 || r.Info[0].Path != "building" {
		t.Errorf("expected info about default options, got %v", r.Info)
	}
}

func TestValidateProjectDuplicateID(t *testing.T) {
	d := validDoc()
	d.Boxes[1].ID = "a"
	r := ValidateProject(d)
	assertHasError(t, r, "boxes[1].id")
	if r.Errors[0].ConflictWith != "boxes[0].id" {
		t.Errorf("expected conflict with boxes[0].id, got %q", r.Errors[0].ConflictWith)
	}
}

func TestValidateProjectMissingIDIsInfo(t *testing.T) {
	d := validDoc()
	d.Boxes[0].ID = ""
	r := ValidateProject(d)
	if !r.Valid {
		t.Errorf("missing id should not invalidate, got %v", r.Errors)
	}
	if len(r.Info) != 1 {
		t.Errorf("expected 1 info, got %v", r.Info)
	}
}

func TestValidateProjectUnknownType(t *testing.T) {
	d := validDoc()
	d.Boxes[0].Type = "tower"
	assertHasError(t, ValidateProject(d), "boxes[0].type")
}

func TestValidateProjectFootprintAndSize(t *testing.T) {
	d := validDoc()
	d.Boxes[0].Size = []float64{1, 1, 1}
	assertHasError(t, ValidateProject(d), "boxes[0].size")
}

func TestValidateProjectNonPositiveSize(t *testing.T) {
	d := validDoc()
	d.Boxes[1].Size = []float64{2, 0, -1}
	r := ValidateProject(d)
	assertHasError(t, r, "boxes[1].size[1]")
	assertHasError(t, r, "boxes[1].size[2]")
}

func TestValidateProjectNegativeHeight(t *testing.T) {
	d := validDoc()
	d.Boxes[0].Height = -2
	assertHasError(t, ValidateProject(d), "boxes[0].height")
}

func TestValidateProjectFootprintWarnings(t *testing.T) {
	tests := []struct {
		name      string
		footprint [][]float64
	}{
		{"empty", [][]float64{}},
		{"two points", [][]float64{{0, 0}, {1, 0}}},
		{"collinear", [][]float64{{0, 0}, {1, 0}, {2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDoc()
			d.Boxes[0].Footprint = tt.footprint
			r := ValidateProject(d)
			if !r.Valid {
				t.Errorf("footprint problems should only warn, got %v", r.Errors)
			}
			if len(r.Warnings) != 1 || r.Warnings[0].Path != "boxes[0].footprint" {
				t.Errorf("expected one footprint warning, got %v", r.Warnings)
			}
		})
	}
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}
