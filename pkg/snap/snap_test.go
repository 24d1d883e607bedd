package snap

import (
	"math"
	"testing"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func cube(id string, size float64, pos geo.Vec3) box.Box {
	return box.Box{
		ID:       id,
		Kind:     box.KindGeneric,
		Position: pos,
		Shape:    box.Extent{Size: geo.V3(size, size, size)},
	}
}

func TestGridSnap(t *testing.T) {
	opts := Options{SnapToGrid: true, GridSize: 1}
	got := Grid(geo.V3(1.3, 0.4, 4.7), opts)
	if got != geo.V3(1, 0.4, 5) {
		t.Errorf("expected (1,0.4,5), got %v", got)
	}
}

func TestGridSnapVertical(t *testing.T) {
	opts := Options{SnapToGrid: true, GridSize: 0.5, AllowVertical: true}
	got := Grid(geo.V3(1.3, 0.8, -0.6), opts)
	if !approxEqual(got.X, 1.5, tolerance) || !approxEqual(got.Y, 1, tolerance) || !approxEqual(got.Z, -0.5, tolerance) {
		t.Errorf("expected (1.5,1,-0.5), got %v", got)
	}
}

func TestGridSnapHalfRoundsUp(t *testing.T) {
	got := Grid(geo.V3(-2.5, 0, 2.5), Options{SnapToGrid: true, GridSize: 1})
	if got.X != -2 || got.Z != 3 {
		t.Errorf("expected (-2,_,3), got %v", got)
	}
}

func TestGridSnapDisabled(t *testing.T) {
	pos := geo.V3(1.3, 0, 4.7)
	if got := Grid(pos, Options{SnapToGrid: false, GridSize: 1}); got != pos {
		t.Errorf("expected unchanged, got %v", got)
	}
	if got := Grid(pos, Options{SnapToGrid: true, GridSize: 0}); got != pos {
		t.Errorf("expected unchanged for zero grid, got %v", got)
	}
}

func TestNeighborSnapEdgeToEdge(t *testing.T) {
	// Neighbor spans X [0,2]; moving box is 1 wide (half-extent 0.5) and its
	// left edge sits at 2.05, 0.05 past the neighbor's right edge.
	neighbor := cube("n", 2, geo.V3(1, 0, 0))
	moving := cube("m", 1, geo.V3(0, 0, 10))
	boxes := []box.Box{neighbor, moving}

	opts := Options{SnapToObjects: true, SnapDistance: 0.2}
	got := Position(geo.V3(2.55, 0, 10), moving, 0, boxes, "m", opts)
	if !approxEqual(got.X, 2.5, tolerance) {
		t.Errorf("expected X snapped to 2.5, got %f", got.X)
	}
	if got.Z != 10 {
		t.Errorf("expected Z to keep 10, got %f", got.Z)
	}
}

func TestNeighborSnapCenterAlignment(t *testing.T) {
	neighbor := cube("n", 4, geo.V3(0, 0, 0))
	moving := cube("m", 1, geo.V3(0, 0, 0))
	got := Neighbors(geo.V3(20, 0, 0.1), moving, 0, []box.Box{neighbor, moving}, "m", 0.3)
	if got.X != 20 {
		t.Errorf("expected X untouched, got %f", got.X)
	}
	if !approxEqual(got.Z, 0, tolerance) {
		t.Errorf("expected Z centered on 0, got %f", got.Z)
	}
}

func TestNeighborSnapIgnoresSelf(t *testing.T) {
	moving := cube("m", 1, geo.V3(0, 0, 0))
	got := Neighbors(geo.V3(0.05, 0, 0.05), moving, 0, []box.Box{moving}, "m", 1)
	if got != geo.V3(0.05, 0, 0.05) {
		t.Errorf("expected no snap against itself, got %v", got)
	}
}

func TestNeighborSnapTieKeepsFirst(t *testing.T) {
	// Both neighbors offer targets exactly 0.25 away on X, on opposite sides.
	first := cube("a", 1, geo.V3(0.75, 0, 50))
	second := cube("b", 1, geo.V3(1.25, 0, -50))
	moving := cube("m", 1, geo.V3(0, 0, 0))
	got := Neighbors(geo.V3(1, 0, 0), moving, 0, []box.Box{first, second, moving}, "m", 0.3)
	if got.X != 0.75 {
		t.Errorf("expected first neighbor to win tie at 0.75, got %f", got.X)
	}
}

func TestNeighborSnapClosestWins(t *testing.T) {
	far := cube("far", 1, geo.V3(5.15, 0, 50))
	near := cube("near", 1, geo.V3(5.05, 0, -50))
	moving := cube("m", 1, geo.V3(0, 0, 0))
	got := Neighbors(geo.V3(5, 0, 0), moving, 0, []box.Box{far, near, moving}, "m", 0.2)
	if !approxEqual(got.X, 5.05, tolerance) {
		t.Errorf("expected closest target 5.05, got %f", got.X)
	}
}

func TestNeighborSnapThresholdExclusive(t *testing.T) {
	neighbor := cube("n", 2, geo.V3(0, 0, 30))
	moving := cube("m", 2, geo.V3(0, 0, 0))
	// Nearest X target is the right edge 1 plus half-extent 1, exactly 0.5 away.
	got := Neighbors(geo.V3(2.5, 0, 0), moving, 0, []box.Box{neighbor, moving}, "m", 0.5)
	if got.X != 2.5 {
		t.Errorf("expected no snap at exactly the threshold, got %f", got.X)
	}
}

func TestPositionGridThenNeighbor(t *testing.T) {
	neighbor := cube("n", 2, geo.V3(1, 0, 40))
	moving := cube("m", 1, geo.V3(0, 0, 0))
	opts := Options{SnapToGrid: true, GridSize: 1, SnapToObjects: true, SnapDistance: 0.6}
	// Grid takes 2.7 to 3; neighbor then pulls the left edge onto X=2.
	got := Position(geo.V3(2.7, 0, 0.2), moving, 0, []box.Box{neighbor, moving}, "m", opts)
	if !approxEqual(got.X, 2.5, tolerance) {
		t.Errorf("expected X 2.5, got %f", got.X)
	}
	if got.Z != 0 {
		t.Errorf("expected grid Z 0, got %f", got.Z)
	}
}

func TestPositionRotatedMovingBox(t *testing.T) {
	// A 4x2 footprint rotated 90 degrees has half-extent 1 on X.
	moving := box.Box{
		ID: "m",
		Shape: box.Footprint{
			Points: []geo.Point2D{geo.Pt(-2, -1), geo.Pt(2, -1), geo.Pt(2, 1), geo.Pt(-2, 1)},
			Height: 1,
		},
	}
	neighbor := cube("n", 2, geo.V3(0, 0, 40))
	got := Neighbors(geo.V3(2.1, 0, 0), moving, math.Pi/2, []box.Box{neighbor, moving}, "m", 0.2)
	if !approxEqual(got.X, 2, tolerance) {
		t.Errorf("expected X 2 (edge at 1 + half-extent 1), got %f", got.X)
	}
}

func TestPositionObjectsDisabled(t *testing.T) {
	neighbor := cube("n", 2, geo.V3(1, 0, 0))
	moving := cube("m", 1, geo.V3(0, 0, 0))
	pos := geo.V3(2.55, 0, 10)
	opts := Options{SnapToObjects: false, SnapDistance: 1}
	if got := Position(pos, moving, 0, []box.Box{neighbor, moving}, "m", opts); got != pos {
		t.Errorf("expected unchanged, got %v", got)
	}
	opts = Options{SnapToObjects: true, SnapDistance: 0}
	if got := Position(pos, moving, 0, []box.Box{neighbor, moving}, "m", opts); got != pos {
		t.Errorf("expected unchanged with zero distance, got %v", got)
	}
}

func BenchmarkPosition(b *testing.B) {
	boxes := make([]box.Box, 0, 400)
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			boxes = append(boxes, cube("b", 2, geo.V3(float64(i)*3, 0, float64(j)*3)))
		}
	}
	moving := cube("m", 1, geo.V3(0, 0, 0))
	opts := DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Position(geo.V3(17.3, 0, 22.9), moving, 0.3, boxes, "m", opts)
	}
}
