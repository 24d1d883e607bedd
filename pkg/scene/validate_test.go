package scene

import (
	"testing"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

func TestValidateGraph_Valid(t *testing.T) {
	r := ValidateGraph(Assemble("test", testBoxes()))
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateGraph_Nil(t *testing.T) {
	r := ValidateGraph(nil)
	if r.Valid {
		t.Error("expected invalid for nil graph")
	}
}

func TestValidateGraph_DuplicateID(t *testing.T) {
	boxes := append(testBoxes(), box.Box{ID: "tower", Position: geo.V3(20, 0.5, 0)})
	r := ValidateGraph(Assemble("test", boxes))
	if r.Valid {
		t.Error("expected invalid for duplicate ID")
	}
	if r.Errors[0].ConflictWith != "entities[0].id" {
		t.Errorf("expected conflict with entities[0].id, got %q", r.Errors[0].ConflictWith)
	}
}

func TestValidateGraph_OrphanedGroupReference(t *testing.T) {
	g := Assemble("test", testBoxes())
	g.Groups.Layers[LayerGround] = append(g.Groups.Layers[LayerGround], "nonexistent")
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for orphaned group reference")
	}
}

func TestValidateGraph_MissingGroupMembership(t *testing.T) {
	g := Assemble("test", testBoxes())
	g.Groups.Layers[LayerGround] = []string{}
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for missing group membership")
	}
}

func TestValidateGraph_MissingGroup(t *testing.T) {
	g := Assemble("test", testBoxes())
	delete(g.Groups.EntityTypes, EntityGeneric)
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for entity type without group")
	}
}

func TestValidateGraph_StackedWithoutSupport(t *testing.T) {
	g := Assemble("test", testBoxes())
	for i := range g.Entities {
		if g.Entities[i].ID == "lobby" {
			g.Entities[i].RestsOn = nil
		}
	}
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for stacked entity without support")
	}
}

func TestValidateGraph_OutsideBoundsWarning(t *testing.T) {
	g := Assemble("test", testBoxes())
	g.Metadata.SceneBounds.Max.X = 0
	r := ValidateGraph(g)
	if !r.Valid {
		t.Error("bounds enclosure should only warn")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected warning for entity outside scene bounds")
	}
}

func TestValidateGraph_ZeroDimensionWarning(t *testing.T) {
	post := box.Box{ID: "post", Position: geo.V3(0, 0.5, 0), Shape: box.Footprint{Points: []geo.Point2D{}, Height: 1}}
	r := ValidateGraph(Assemble("test", []box.Box{post}))
	if len(r.Warnings) == 0 {
		t.Error("expected warning for zero dimension")
	}
}
