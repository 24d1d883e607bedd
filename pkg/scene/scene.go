// Package scene assembles the box list into a renderable scene graph: one
// entity per box with its world bounds, grouped by kind and by how it sits
// relative to the ground and to other boxes.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

// LayerType describes where an entity sits vertically.
type LayerType string

const (
	LayerGround     LayerType = "ground"
	LayerStacked    LayerType = "stacked"
	LayerFloating   LayerType = "floating"
	LayerBelowGrade LayerType = "below_grade"
)

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityBuilding EntityType = "building"
	EntityRoom     EntityType = "room"
	EntityGeneric  EntityType = "generic"
)

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min geo.Vec3 `json:"min"`
	Max geo.Vec3 `json:"max"`
}

// Entity is a single element in the scene graph.
type Entity struct {
	ID   string     `json:"id"`
	Type EntityType `json:"type"`
	// Position is the box center.
	Position geo.Vec3 `json:"position"`
	// Dimensions is the local footprint extent and the height.
	Dimensions geo.Vec3       `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Bounds     box.Bounds     `json:"bounds"`
	Material   string         `json:"material"`
	Layer      LayerType      `json:"layer"`
	RestsOn    []string       `json:"rests_on,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Graph is the renderable group the viewer draws and frames.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	Name        string      `json:"name"`
	GeneratedAt string      `json:"generated_at"`
	SceneBounds BoundingBox `json:"scene_bounds"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Layers      map[LayerType][]string  `json:"layers"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Layers:      make(map[LayerType][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// WorldBounds returns the AABB enclosing every entity's world bounds. ok is
// false for an empty graph.
func (g *Graph) WorldBounds() (min, max mgl64.Vec3, ok bool) {
	if g == nil || len(g.Entities) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	b := g.Metadata.SceneBounds
	return mgl64.Vec3{b.Min.X, b.Min.Y, b.Min.Z}, mgl64.Vec3{b.Max.X, b.Max.Y, b.Max.Z}, true
}

// Entity returns the entity with the given id.
func (g *Graph) Entity(id string) (Entity, bool) {
	for _, e := range g.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
