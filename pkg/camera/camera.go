// Package camera frames a renderable scene: it measures the scene's world
// bounds and moves the camera and orbit target so the whole scene fits the
// view.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFOV and DefaultAspect are used for cameras that do not expose a
	// perspective projection.
	DefaultFOV    = 50.0
	DefaultAspect = 1.0

	// Margin overscans the fitted distance so the scene does not touch the
	// viewport edges.
	Margin = 1.3
)

// Camera is a scene camera with a mutable position.
type Camera interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
}

// Perspective is implemented by cameras with a perspective projection.
// FOV is the vertical field of view in degrees.
type Perspective interface {
	FOV() float64
	Aspect() float64
}

// Projector is implemented by cameras that cache a projection matrix.
type Projector interface {
	UpdateProjectionMatrix()
}

// Controls is an orbit-style controller with a look-at target.
type Controls interface {
	Target() mgl64.Vec3
	SetTarget(t mgl64.Vec3)
	Update()
}

// Renderable reports the world-space AABB of everything it draws. ok is
// false when there is nothing to measure.
type Renderable interface {
	WorldBounds() (min, max mgl64.Vec3, ok bool)
}

// Frame describes a fitted view.
type Frame struct {
	Center   mgl64.Vec3 `json:"center"`
	Size     mgl64.Vec3 `json:"size"`
	Distance float64    `json:"distance"`
}

// FitDistance returns how far from the center a camera with the given
// vertical fov (degrees) and aspect must sit to see a cube of maxSize,
// including Margin.
func FitDistance(maxSize, fov, aspect float64) float64 {
	fitHeight := maxSize / (2 * math.Tan(fov*math.Pi/360))
	fitWidth := fitHeight / aspect
	return Margin * math.Max(fitHeight, fitWidth)
}

// FrameScene repositions cam and controls so group fills the view, keeping
// the current viewing direction. It does nothing and returns false when a
// host object is missing or the scene bounds are empty.
func FrameScene(controls Controls, group Renderable, cam Camera) (Frame, bool) {
	if controls == nil || group == nil || cam == nil {
		return Frame{}, false
	}
	lo, hi, ok := group.WorldBounds()
	if !ok || hi.X() < lo.X() || hi.Y() < lo.Y() || hi.Z() < lo.Z() {
		return Frame{}, false
	}

	center := lo.Add(hi).Mul(0.5)
	size := hi.Sub(lo)
	maxSize := math.Max(size.X(), math.Max(size.Y(), size.Z()))

	fov, aspect := DefaultFOV, DefaultAspect
	if p, ok := cam.(Perspective); ok {
		fov, aspect = p.FOV(), p.Aspect()
	}
	distance := FitDistance(maxSize, fov, aspect)

	direction := cam.Position().Sub(controls.Target())
	if direction.Len() == 0 {
		direction = mgl64.Vec3{0, 0, 1}
	}
	direction = direction.Normalize()
	cam.SetPosition(center.Add(direction.Mul(distance)))

	controls.SetTarget(center)
	controls.Update()
	if p, ok := cam.(Projector); ok {
		p.UpdateProjectionMatrix()
	}

	return Frame{Center: center, Size: size, Distance: distance}, true
}
