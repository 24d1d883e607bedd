package scene

import (
	"fmt"

	"github.com/ChicagoDave/massing/pkg/validation"
)

const boundsTolerance = 1e-6

// ValidateGraph performs structural validation on a scene graph.
// It checks entity integrity, group index consistency, and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateSupports(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:        validation.LevelSpatial,
				Message:      fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:         fmt.Sprintf("entities[%d].id", i),
				ActualValue:  e.ID,
				ConflictWith: fmt.Sprintf("entities[%d].id", prev),
			})
		}
		seen[e.ID] = i
	}
}

func entityIDs(g *Graph) map[string]bool {
	ids := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		ids[e.ID] = true
	}
	return ids
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	ids := entityIDs(g)

	checkGroup := func(groupType, groupName string, members []string) {
		for _, id := range members {
			if !ids[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, members := range g.Groups.Layers {
		checkGroup("layers", string(name), members)
	}
	for name, members := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), members)
	}
}

func memberSets[K ~string](groups map[K][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(groups))
	for name, ids := range groups {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		out[string(name)] = m
	}
	return out
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	layerMembers := memberSets(g.Groups.Layers)
	typeMembers := memberSets(g.Groups.EntityTypes)

	check := func(e Entity, groupType, value string, members map[string]map[string]bool) {
		m, ok := members[value]
		switch {
		case !ok:
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has %s %q but no such group exists", e.ID, groupType, value),
				Path:        "groups." + groupType,
				ActualValue: value,
			})
		case !m[e.ID]:
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has %s %q but is not in that group", e.ID, groupType, value),
				Path:        fmt.Sprintf("groups.%s.%s", groupType, value),
				ActualValue: e.ID,
			})
		}
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}
		check(e, "layers", string(e.Layer), layerMembers)
		check(e, "entity_types", string(e.Type), typeMembers)
	}
}

func validateSupports(g *Graph, r *validation.Report) {
	ids := entityIDs(g)
	for i, e := range g.Entities {
		if e.Layer == LayerStacked && len(e.RestsOn) == 0 {
			r.AddError(validation.Result{
				Level:    validation.LevelSpatial,
				Message:  fmt.Sprintf("entity %q is stacked but rests on nothing", e.ID),
				Path:     fmt.Sprintf("entities[%d].rests_on", i),
				Expected: "at least one supporting entity",
			})
		}
		for _, id := range e.RestsOn {
			if id == e.ID || !ids[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q rests on invalid entity %q", e.ID, id),
					Path:        fmt.Sprintf("entities[%d].rests_on", i),
					ActualValue: id,
					Expected:    "another existing entity ID",
				})
			}
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	sb := g.Metadata.SceneBounds

	for _, e := range g.Entities {
		b := e.Bounds
		if b.MinX < sb.Min.X-boundsTolerance || b.MaxX > sb.Max.X+boundsTolerance ||
			b.MinY < sb.Min.Y-boundsTolerance || b.MaxY > sb.Max.Y+boundsTolerance ||
			b.MinZ < sb.Min.Z-boundsTolerance || b.MaxZ > sb.Max.Z+boundsTolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q extends outside scene bounds", e.ID),
				Path:        "metadata.scene_bounds",
				ActualValue: b,
			})
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		if e.Dimensions.X <= 0 || e.Dimensions.Y <= 0 || e.Dimensions.Z <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q has zero or negative dimension (%.2f, %.2f, %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Path:        fmt.Sprintf("entities.%s.dimensions", e.ID),
				ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", e.Dimensions.X, e.Dimensions.Y, e.Dimensions.Z),
				Expected:    "all dimensions > 0",
			})
		}
	}
}
