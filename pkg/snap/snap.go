// Package snap corrects a candidate box position by snapping it to a grid and
// then to the edges and centers of neighboring boxes.
package snap

import (
	"math"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

// Options configures snapping. It is read-only to the engine.
type Options struct {
	SnapToGrid    bool    `yaml:"snap_to_grid" json:"snap_to_grid"`
	GridSize      float64 `yaml:"grid_size" json:"grid_size"`
	SnapToObjects bool    `yaml:"snap_to_objects" json:"snap_to_objects"`
	SnapDistance  float64 `yaml:"snap_distance" json:"snap_distance"`
	AllowVertical bool    `yaml:"allow_vertical" json:"allow_vertical"`
}

// DefaultOptions mirrors the editor defaults: 1m grid, 0.5m object snap.
func DefaultOptions() Options {
	return Options{
		SnapToGrid:    true,
		GridSize:      1,
		SnapToObjects: true,
		SnapDistance:  0.5,
	}
}

// Position returns pos corrected by grid snap and then neighbor snap. The
// moving box is measured at the grid-snapped position with rotation rotY.
// Boxes with id selectedID are not treated as neighbors. Inputs are not
// modified.
func Position(pos geo.Vec3, selected box.Box, rotY float64, boxes []box.Box, selectedID string, opts Options) geo.Vec3 {
	next := Grid(pos, opts)
	if !opts.SnapToObjects || opts.SnapDistance <= 0 {
		return next
	}
	return Neighbors(next, selected, rotY, boxes, selectedID, opts.SnapDistance)
}

// Grid rounds X and Z to the nearest multiple of GridSize, and Y too when
// AllowVertical is set. It is a no-op unless SnapToGrid is on and GridSize > 0.
func Grid(pos geo.Vec3, opts Options) geo.Vec3 {
	if !opts.SnapToGrid || opts.GridSize <= 0 {
		return pos
	}
	g := opts.GridSize
	out := geo.Vec3{
		X: roundTo(pos.X, g),
		Y: pos.Y,
		Z: roundTo(pos.Z, g),
	}
	if opts.AllowVertical {
		out.Y = roundTo(pos.Y, g)
	}
	return out
}

// roundTo rounds half toward +Inf, so -2.5 on a unit grid lands on -2.
func roundTo(v, g float64) float64 {
	return math.Floor(v/g+0.5) * g
}

// Neighbors aligns the moving box's edges or center with those of other boxes
// on X and Z independently. On each axis the offset closest to pos wins if it
// is within distance; ties keep the first one found in box order. An axis
// with no qualifying offset keeps its input value.
func Neighbors(pos geo.Vec3, selected box.Box, rotY float64, boxes []box.Box, selectedID string, distance float64) geo.Vec3 {
	moving := box.ComputeAt(selected, pos, rotY)
	halfX, halfZ := moving.HalfX(), moving.HalfZ()

	bestX := axis{value: pos.X, delta: math.Inf(1)}
	bestZ := axis{value: pos.Z, delta: math.Inf(1)}

	for _, other := range boxes {
		if other.ID == selectedID {
			continue
		}
		b := box.Compute(other)
		for _, c := range [3]float64{b.MinX, b.MaxX, b.MidX()} {
			bestX.consider(pos.X, c, halfX, distance)
		}
		for _, c := range [3]float64{b.MinZ, b.MaxZ, b.MidZ()} {
			bestZ.consider(pos.Z, c, halfZ, distance)
		}
	}

	return geo.Vec3{X: bestX.value, Y: pos.Y, Z: bestZ.value}
}

type axis struct {
	value float64
	delta float64
}

// consider tries edge-to-edge (c-half, c+half) and center (c) alignment
// against target c.
func (a *axis) consider(current, c, half, distance float64) {
	for _, offset := range [3]float64{c - half, c + half, c} {
		d := math.Abs(offset - current)
		if d < distance && d < a.delta {
			a.delta = d
			a.value = offset
		}
	}
}
