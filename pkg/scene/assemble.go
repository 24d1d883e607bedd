package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
	"github.com/ChicagoDave/massing/pkg/stack"
)

// contactTolerance is how close a box's base must be to a surface to count
// as resting on it.
const contactTolerance = 1e-6

// Assemble converts the box list into a scene graph.
func Assemble(name string, boxes []box.Box) *Graph {
	g := NewGraph()
	idx := stack.NewIndex(boxes)

	for _, b := range boxes {
		bounds := box.Compute(b)
		layer, restsOn := classify(b.ID, bounds, idx)

		addEntity(g, Entity{
			ID:         b.ID,
			Type:       entityType(b.Kind),
			Position:   b.Position,
			Dimensions: dimensions(b),
			Rotation:   yawQuat(b.RotationY),
			Bounds:     bounds,
			Material:   material(b.Kind),
			Layer:      layer,
			RestsOn:    restsOn,
			Metadata:   shapeMetadata(b),
		})
	}

	g.Metadata = Metadata{
		Name:        name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		SceneBounds: computeBounds(g.Entities),
	}
	return g
}

// classify places a box on the ground, on other boxes, below grade, or in
// the air.
func classify(id string, b box.Bounds, idx *stack.Index) (LayerType, []string) {
	switch {
	case math.Abs(b.MinY) <= contactTolerance:
		return LayerGround, nil
	case b.MinY < 0:
		return LayerBelowGrade, nil
	}
	var on []string
	for _, h := range idx.Query(b) {
		if h.ID != id && math.Abs(h.Bounds.MaxY-b.MinY) <= contactTolerance {
			on = append(on, h.ID)
		}
	}
	if len(on) == 0 {
		return LayerFloating, nil
	}
	return LayerStacked, on
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	g.Groups.Layers[e.Layer] = append(g.Groups.Layers[e.Layer], e.ID)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], e.ID)
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := geo.Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := geo.Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		b := e.Bounds
		minV.X = math.Min(minV.X, b.MinX)
		maxV.X = math.Max(maxV.X, b.MaxX)
		minV.Y = math.Min(minV.Y, b.MinY)
		maxV.Y = math.Max(maxV.Y, b.MaxY)
		minV.Z = math.Min(minV.Z, b.MinZ)
		maxV.Z = math.Max(maxV.Z, b.MaxZ)
	}
	return BoundingBox{Min: minV, Max: maxV}
}

// dimensions measures the unrotated box: footprint extent and height.
func dimensions(b box.Box) geo.Vec3 {
	local := box.ComputeAt(b, geo.Vec3{}, 0)
	return geo.Vec3{
		X: local.MaxX - local.MinX,
		Y: local.MaxY - local.MinY,
		Z: local.MaxZ - local.MinZ,
	}
}

// yawQuat returns the rotation matching box.Compute: footprints turn from +X
// toward +Z, which is a negative turn about +Y.
func yawQuat(angle float64) [4]float64 {
	q := mgl64.QuatRotate(-angle, mgl64.Vec3{0, 1, 0})
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

func entityType(k box.Kind) EntityType {
	switch k {
	case box.KindBuilding:
		return EntityBuilding
	case box.KindRoom:
		return EntityRoom
	default:
		return EntityGeneric
	}
}

func material(k box.Kind) string {
	switch k {
	case box.KindBuilding:
		return "concrete"
	case box.KindRoom:
		return "glass"
	default:
		return "wireframe"
	}
}

func shapeMetadata(b box.Box) map[string]any {
	meta := map[string]any{"rotation_y": b.RotationY}
	switch s := b.Shape.(type) {
	case box.Footprint:
		meta["shape"] = "footprint"
		meta["footprint_points"] = len(s.Points)
		meta["footprint_area"] = geo.NewPolygon(s.Points...).Area()
	case box.Extent:
		meta["shape"] = "extent"
	default:
		meta["shape"] = "default"
	}
	if len(b.Vertices) > 0 {
		meta["vertices"] = len(b.Vertices)
	}
	return meta
}
