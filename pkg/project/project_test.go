package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/massing/internal/pkg/idgen"
	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/geo"
	"github.com/ChicagoDave/massing/pkg/snap"
)

func TestLoadProject(t *testing.T) {
	doc, err := LoadProject("../../examples/demo")
	require.NoError(t, err)

	assert.Equal(t, "0.1.0", doc.Version)
	assert.Equal(t, "demo", doc.Name)
	assert.Equal(t, snap.Options{
		SnapToGrid: true, GridSize: 1,
		SnapToObjects: true, SnapDistance: 0.2,
	}, doc.Options())
	require.Len(t, doc.Boxes, 4)

	boxes := doc.Entities(idgen.NewSequential("box"))
	require.Len(t, boxes, 4)

	tower := boxes[0]
	assert.Equal(t, "tower", tower.ID)
	assert.Equal(t, box.KindBuilding, tower.Kind)
	assert.Equal(t, box.Footprint{
		Points: []geo.Point2D{geo.Pt(-1, -1), geo.Pt(1, -1), geo.Pt(1, 1), geo.Pt(-1, 1)},
		Height: 2,
	}, tower.Shape)

	lobby := boxes[2]
	assert.Equal(t, box.KindRoom, lobby.Kind)
	assert.Equal(t, box.Extent{Size: geo.V3(2, 1, 2)}, lobby.Shape)

	generic := boxes[3]
	assert.Equal(t, "box_1", generic.ID)
	assert.Equal(t, box.KindGeneric, generic.Kind)
	assert.Len(t, generic.Vertices, 4)
	assert.Equal(t, 1.0, generic.Height())
	b := box.Compute(generic)
	assert.Equal(t, box.Bounds{MinX: 0, MaxX: 1, MinZ: 6, MaxZ: 7, MinY: 0, MaxY: 1}, b)
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	assert.Error(t, err)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty document", ""},
		{"boxes missing", "name: x\n"},
		{"unknown top-level key", "boxes: []\nlights: 3\n"},
		{"position wrong length", "boxes:\n  - position: [1, 2]\n"},
		{"footprint point wrong length", "boxes:\n  - position: [0, 0, 0]\n    footprint: [[1, 2, 3]]\n"},
		{"grid size not a number", "building: {grid_size: big}\nboxes: []\n"},
		{"bad projection", "camera: {projection: fisheye}\nboxes: []\n"},
		{"fov out of range", "camera: {fov: 180}\nboxes: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseMinimal(t *testing.T) {
	doc, err := Parse([]byte("boxes:\n  - {id: a, position: [0, 0.5, 0]}\n"))
	require.NoError(t, err)
	assert.Equal(t, snap.DefaultOptions(), doc.Options())

	boxes := doc.Entities(nil)
	require.Len(t, boxes, 1)
	assert.Nil(t, boxes[0].Shape)
	assert.Equal(t, box.Bounds{MinX: -0.5, MaxX: 0.5, MinZ: -0.5, MaxZ: 0.5, MinY: 0, MaxY: 1}, box.Compute(boxes[0]))
}

func TestEmptyFootprintIsKept(t *testing.T) {
	doc, err := Parse([]byte("boxes:\n  - {id: a, position: [2, 0, 3], footprint: [], height: 4}\n"))
	require.NoError(t, err)
	b := doc.Entities(nil)[0]
	assert.Equal(t, box.Bounds{MinX: 2, MaxX: 2, MinZ: 3, MaxZ: 3, MinY: -2, MaxY: 2}, box.Compute(b))
}

func TestEntitiesGeneratesUUIDs(t *testing.T) {
	doc := &Document{Boxes: []BoxDoc{{Position: []float64{0, 0, 0}}, {Position: []float64{1, 0, 0}}}}
	boxes := doc.Entities(nil)
	assert.NotEmpty(t, boxes[0].ID)
	assert.NotEqual(t, boxes[0].ID, boxes[1].ID)
}

func TestCameraBuild(t *testing.T) {
	cam, controls := CameraDoc{}.Build()
	p, ok := cam.(*camera.PerspectiveCamera)
	require.True(t, ok)
	assert.Equal(t, camera.DefaultFOV, p.FOV())
	assert.Equal(t, mgl64.Vec3{10, 10, 10}, p.Position())
	assert.Equal(t, mgl64.Vec3{}, controls.Target())

	cam, controls = CameraDoc{Projection: "orthographic", Aspect: 2, Position: []float64{0, 5, 0}, Target: []float64{1, 2, 3}}.Build()
	o, ok := cam.(*camera.OrthographicCamera)
	require.True(t, ok)
	assert.Equal(t, 40.0, o.Right-o.Left)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, controls.Target())
}

func TestLoadFromTempDir(t *testing.T) {
	dir := t.TempDir()
	data := "name: tmp\nboxes:\n  - {id: a, type: room, position: [0, 1, 0], size: [1, 2, 1]}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644))

	doc, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "tmp", doc.Name)
	assert.Equal(t, []float64{1, 2, 1}, doc.Boxes[0].Size)
}

func TestFromBoxConvertsBack(t *testing.T) {
	doc, err := LoadProject("../../examples/demo")
	require.NoError(t, err)

	for _, b := range doc.Entities(idgen.NewSequential("box")) {
		assert.Equal(t, b, FromBox(b).Box(), b.ID)
	}

	bd := FromBox(box.Box{ID: "x", Kind: box.KindRoom, Shape: box.Extent{Size: geo.V3(2, 1, 3)}})
	assert.Equal(t, []float64{2, 1, 3}, bd.Size)
	assert.Nil(t, bd.Footprint)
	assert.Equal(t, []float64{0, 0, 0}, bd.Position)
}
