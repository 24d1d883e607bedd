package camera

import "github.com/go-gl/mathgl/mgl64"

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// PerspectiveCamera is a headless perspective camera.
type PerspectiveCamera struct {
	Pos         mgl64.Vec3 `json:"position"`
	FOVDegrees  float64    `json:"fov"`
	AspectRatio float64    `json:"aspect"`
	Near        float64    `json:"near"`
	Far         float64    `json:"far"`
	Projection  mgl64.Mat4 `json:"-"`
}

// NewPerspective returns a camera at pos with the given vertical fov in
// degrees and aspect ratio.
func NewPerspective(pos mgl64.Vec3, fov, aspect float64) *PerspectiveCamera {
	c := &PerspectiveCamera{Pos: pos, FOVDegrees: fov, AspectRatio: aspect, Near: 0.1, Far: 10000}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) Position() mgl64.Vec3     { return c.Pos }
func (c *PerspectiveCamera) SetPosition(p mgl64.Vec3) { c.Pos = p }
func (c *PerspectiveCamera) FOV() float64             { return c.FOVDegrees }
func (c *PerspectiveCamera) Aspect() float64          { return c.AspectRatio }

// UpdateProjectionMatrix recomputes Projection from fov, aspect and clip
// planes.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.Projection = mgl64.Perspective(mgl64.DegToRad(c.FOVDegrees), c.AspectRatio, c.Near, c.Far)
}

// OrthographicCamera is a headless orthographic camera. It has no field of
// view, so framing falls back to the default fov and aspect.
type OrthographicCamera struct {
	Pos                      mgl64.Vec3 `json:"position"`
	Left, Right, Bottom, Top float64    `json:"-"`
	Near, Far                float64    `json:"-"`
	Projection               mgl64.Mat4 `json:"-"`
}

func (c *OrthographicCamera) Position() mgl64.Vec3     { return c.Pos }
func (c *OrthographicCamera) SetPosition(p mgl64.Vec3) { c.Pos = p }

// UpdateProjectionMatrix recomputes Projection from the frustum planes.
func (c *OrthographicCamera) UpdateProjectionMatrix() {
	c.Projection = mgl64.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
}

// OrbitControls orbits a camera around a target point.
type OrbitControls struct {
	Camera    Camera     `json:"-"`
	TargetPos mgl64.Vec3 `json:"target"`
	View      mgl64.Mat4 `json:"-"`
}

// NewOrbitControls returns controls looking from cam at target.
func NewOrbitControls(cam Camera, target mgl64.Vec3) *OrbitControls {
	c := &OrbitControls{Camera: cam, TargetPos: target}
	c.Update()
	return c
}

func (c *OrbitControls) Target() mgl64.Vec3     { return c.TargetPos }
func (c *OrbitControls) SetTarget(t mgl64.Vec3) { c.TargetPos = t }

// Update recomputes the view matrix from the camera position and target.
func (c *OrbitControls) Update() {
	if c.Camera == nil {
		return
	}
	c.View = mgl64.LookAtV(c.Camera.Position(), c.TargetPos, Up)
}
