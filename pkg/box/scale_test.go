package box

import (
	"testing"

	"github.com/ChicagoDave/massing/pkg/geo"
)

func TestApplyScaleIdentity(t *testing.T) {
	shapes := []Box{
		square("fp", 1, 2, geo.V3(0, 0, 0)),
		{ID: "ext", Shape: Extent{Size: geo.V3(1, 2, 3)}},
		{ID: "none"},
	}
	for _, b := range shapes {
		got, did := ApplyScale(b, geo.One)
		if did {
			t.Errorf("%s: expected didScale=false for identity", b.ID)
		}
		if fp, ok := b.Shape.(Footprint); ok {
			gotFP := got.Shape.(Footprint)
			if &gotFP.Points[0] != &fp.Points[0] {
				t.Errorf("%s: expected the same footprint backing array", b.ID)
			}
		}
		if got.ID != b.ID || (got.Shape == nil) != (b.Shape == nil) {
			t.Errorf("%s: expected unchanged box, got %+v", b.ID, got)
		}
	}
}

func TestApplyScaleExtent(t *testing.T) {
	b := Box{ID: "e", Kind: KindGeneric, Shape: Extent{Size: geo.V3(2, 3, 4)}}
	got, did := ApplyScale(b, geo.V3(2, 1, 1))
	if !did {
		t.Fatal("expected didScale=true")
	}
	size := got.Shape.(Extent).Size
	if size != geo.V3(4, 3, 4) {
		t.Errorf("expected size (4,3,4), got %v", size)
	}
}

func TestApplyScaleFootprint(t *testing.T) {
	b := square("fp", 1, 2, geo.V3(0, 0, 0))
	got, did := ApplyScale(b, geo.V3(2, 3, 0.5))
	if !did {
		t.Fatal("expected didScale=true")
	}
	fp := got.Shape.(Footprint)
	if fp.Height != 6 {
		t.Errorf("expected height 6, got %f", fp.Height)
	}
	if fp.Points[0] != geo.Pt(-2, -0.5) || fp.Points[2] != geo.Pt(2, 0.5) {
		t.Errorf("expected scaled corners, got %v", fp.Points)
	}

	orig := b.Shape.(Footprint)
	if orig.Points[0] != geo.Pt(-1, -1) || orig.Height != 2 {
		t.Errorf("expected input box untouched, got %v h=%f", orig.Points, orig.Height)
	}
}

func TestApplyScaleFootprintDefaultHeight(t *testing.T) {
	b := Box{ID: "fp", Kind: KindRoom, Shape: Footprint{Points: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)}}}
	got, _ := ApplyScale(b, geo.V3(1, 2.5, 1))
	if h := got.Shape.(Footprint).Height; h != 2.5 {
		t.Errorf("expected height 2.5 from default 1, got %f", h)
	}
}

func TestApplyScaleNoShape(t *testing.T) {
	b := Box{ID: "v", Vertices: []geo.Vec3{geo.V3(0, 0, 0)}}
	if _, did := ApplyScale(b, geo.V3(2, 2, 2)); did {
		t.Error("expected didScale=false without a shape")
	}
}
