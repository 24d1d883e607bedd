package project

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/internal/pkg/idgen"
	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/geo"
)

// Box converts the document entry. A missing type means generic. A box with
// neither footprint nor size but a height gets a unit-square extent of that
// height, so vertices or the 1x1 default still supply the footprint.
func (b BoxDoc) Box() box.Box {
	out := box.Box{
		ID:        b.ID,
		Kind:      box.Kind(b.Type),
		Position:  vec3(b.Position),
		RotationY: b.RotationY,
	}
	if out.Kind == "" {
		out.Kind = box.KindGeneric
	}

	switch {
	case b.Footprint != nil:
		pts := make([]geo.Point2D, 0, len(b.Footprint))
		for _, p := range b.Footprint {
			if len(p) == 2 {
				pts = append(pts, geo.Pt(p[0], p[1]))
			}
		}
		out.Shape = box.Footprint{Points: pts, Height: b.Height}
	case b.Size != nil:
		out.Shape = box.Extent{Size: vec3(b.Size)}
	case b.Height > 0:
		out.Shape = box.Extent{Size: geo.V3(1, b.Height, 1)}
	}

	for _, v := range b.Vertices {
		out.Vertices = append(out.Vertices, vec3(v))
	}
	return out
}

// FromBox renders b back into document form. The result converts back to
// an equal box.
func FromBox(b box.Box) BoxDoc {
	out := BoxDoc{
		ID:        b.ID,
		Type:      string(b.Kind),
		Position:  []float64{b.Position.X, b.Position.Y, b.Position.Z},
		RotationY: b.RotationY,
	}
	switch s := b.Shape.(type) {
	case box.Footprint:
		out.Footprint = make([][]float64, len(s.Points))
		for i, p := range s.Points {
			out.Footprint[i] = []float64{p.X, p.Z}
		}
		out.Height = s.Height
	case box.Extent:
		out.Size = []float64{s.Size.X, s.Size.Y, s.Size.Z}
	}
	for _, v := range b.Vertices {
		out.Vertices = append(out.Vertices, []float64{v.X, v.Y, v.Z})
	}
	return out
}

// Entities converts every entry, assigning ids from gen to entries without one.
// A nil gen uses UUIDs prefixed "box".
func (d *Document) Entities(gen idgen.Generator) []box.Box {
	if gen == nil {
		gen = idgen.NewUUID("box")
	}
	out := make([]box.Box, 0, len(d.Boxes))
	for _, bd := range d.Boxes {
		b := bd.Box()
		if b.ID == "" {
			b.ID = gen.Generate()
		}
		out = append(out, b)
	}
	return out
}

// Build returns the camera and orbit controls described by the document.
// Unset values default to a perspective camera at (10,10,10) looking at the
// origin.
func (c CameraDoc) Build() (camera.Camera, *camera.OrbitControls) {
	fov, aspect := c.FOV, c.Aspect
	if fov <= 0 {
		fov = camera.DefaultFOV
	}
	if aspect <= 0 {
		aspect = camera.DefaultAspect
	}
	pos := mgl64.Vec3{10, 10, 10}
	if len(c.Position) == 3 {
		pos = mgl64.Vec3{c.Position[0], c.Position[1], c.Position[2]}
	}
	var target mgl64.Vec3
	if len(c.Target) == 3 {
		target = mgl64.Vec3{c.Target[0], c.Target[1], c.Target[2]}
	}

	var cam camera.Camera
	if c.Projection == "orthographic" {
		const half = 10
		o := &camera.OrthographicCamera{
			Pos:  pos,
			Left: -half * aspect, Right: half * aspect,
			Bottom: -half, Top: half,
			Near: 0.1, Far: 1000,
		}
		o.UpdateProjectionMatrix()
		cam = o
	} else {
		cam = camera.NewPerspective(pos, fov, aspect)
	}
	return cam, camera.NewOrbitControls(cam, target)
}

func vec3(s []float64) geo.Vec3 {
	if len(s) != 3 {
		return geo.Vec3{}
	}
	return geo.V3(s[0], s[1], s[2])
}
