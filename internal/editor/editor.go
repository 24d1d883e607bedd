// Package editor is the application state behind the transform gadget. It
// owns the entity store, the event log, the snapping options and the
// rotation coalescer, and exposes one method per user gesture.
package editor

import (
	"log"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/internal/errors"
	"github.com/ChicagoDave/massing/internal/store"
	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/events"
	"github.com/ChicagoDave/massing/pkg/frame"
	"github.com/ChicagoDave/massing/pkg/geo"
	"github.com/ChicagoDave/massing/pkg/scene"
	"github.com/ChicagoDave/massing/pkg/scene2d"
	"github.com/ChicagoDave/massing/pkg/snap"
	"github.com/ChicagoDave/massing/pkg/stack"
)

// Config holds the editor's collaborators.
type Config struct {
	Store  *store.Store
	Frames frame.Requester

	// Events defaults to a new log of events.DefaultCapacity.
	Events  *events.Log
	Options snap.Options
	Mode    frame.Mode

	// Camera and Controls are the viewer hosts ZoomToFit moves. Either may
	// be nil, which makes ZoomToFit a no-op.
	Camera   camera.Camera
	Controls camera.Controls

	Name   string
	Logger *log.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Frames == nil {
		vb.RequiredField("Frames")
	}
	return vb.Build()
}

// Gizmo is the transform gadget state for the attached box.
type Gizmo struct {
	Attached  string   `json:"attached,omitempty"`
	Position  geo.Vec3 `json:"position"`
	RotationY float64  `json:"rotationY"`
	Scale     geo.Vec3 `json:"scale"`
}

// Editor applies gestures to the entity store.
type Editor struct {
	store    *store.Store
	events   *events.Log
	camera   camera.Camera
	controls camera.Controls
	name     string
	logger   *log.Logger

	rotation *frame.Slot[rotationUpdate]

	mu      sync.Mutex
	opts    snap.Options
	gizmo   Gizmo
	gesture uint64
	closed  bool
}

type rotationUpdate struct {
	id        string
	rotationY float64
	gesture   uint64
}

// New creates an editor from cfg.
func New(cfg *Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	evs := cfg.Events
	if evs == nil {
		evs = events.NewLog(events.DefaultCapacity, nil, logger)
	}

	e := &Editor{
		store:    cfg.Store,
		events:   evs,
		camera:   cfg.Camera,
		controls: cfg.Controls,
		name:     cfg.Name,
		logger:   logger,
		opts:     cfg.Options,
		gizmo:    Gizmo{Scale: geo.One},
	}
	e.rotation = frame.NewSlot(cfg.Frames, cfg.Mode, e.commitRotation)
	return e, nil
}

// Store returns the entity store.
func (e *Editor) Store() *store.Store { return e.store }

// Events returns the event log.
func (e *Editor) Events() *events.Log { return e.events }

// Options returns the current snapping options.
func (e *Editor) Options() snap.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetOptions replaces the snapping options.
func (e *Editor) SetOptions(o snap.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = o
}

// Gizmo returns the transform gadget state.
func (e *Editor) Gizmo() Gizmo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gizmo
}

// Select attaches the gizmo to the box with the given id.
func (e *Editor) Select(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.attachLocked(id)
	return err
}

// Translate snaps pos and commits it as the box position. It returns the
// committed position.
func (e *Editor) Translate(id string, pos geo.Vec3) (geo.Vec3, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.attachLocked(id)
	if err != nil {
		return geo.Vec3{}, err
	}
	next := snap.Position(pos, b, e.gizmo.RotationY, e.store.Boxes(), id, e.opts)
	e.store.ReplaceByID(id, func(b box.Box) box.Box { return b.WithPosition(next) })
	e.gizmo.Position = next
	return next, nil
}

// Rotate records a rotation from the gadget. The gizmo follows immediately;
// the store commit waits for the next frame and coalesces with any other
// rotation submitted before it.
func (e *Editor) Rotate(id string, rotationY float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.attachLocked(id); err != nil {
		return err
	}
	e.gizmo.RotationY = rotationY
	e.rotation.Submit(rotationUpdate{id: id, rotationY: rotationY, gesture: e.gesture})
	return nil
}

// PendingRotation returns the rotation waiting for the next frame, if any.
func (e *Editor) PendingRotation() (float64, bool) {
	u, ok := e.rotation.Pending()
	return u.rotationY, ok
}

func (e *Editor) commitRotation(u rotationUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commitRotationLocked(u)
}

func (e *Editor) commitRotationLocked(u rotationUpdate) {
	if e.closed || u.gesture != e.gesture {
		return
	}
	if !e.store.ReplaceByID(u.id, func(b box.Box) box.Box { return b.WithRotation(u.rotationY) }) {
		return
	}
	e.events.Emit(events.TransformRotate, events.SourceTransformGizmo, RotatePayload{
		ID:        u.id,
		RotationY: u.rotationY,
	})
}

// Scale folds scale into the box geometry and resets the gizmo scale to
// identity. It reports whether the geometry changed.
func (e *Editor) Scale(id string, scale geo.Vec3) (bool, error) {
	vb := errors.NewValidationBuilder()
	for axis, v := range map[string]float64{"scale.x": scale.X, "scale.y": scale.Y, "scale.z": scale.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			vb.Fieldf(axis, "must be a positive number, got %g", v)
		}
	}
	if err := vb.Build(); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.attachLocked(id)
	if err != nil {
		return false, err
	}
	scaled, did := box.ApplyScale(b, scale)
	if did {
		e.store.ReplaceByID(id, func(box.Box) box.Box { return scaled })
	}
	e.gizmo.Scale = geo.One
	return did, nil
}

// GoOnTop rests the box on whatever it overlaps at the gizmo position and
// rotation, commits the new height and emits transform.goOnTop.
func (e *Editor) GoOnTop(id string) (stack.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.attachLocked(id)
	if err != nil {
		return stack.Result{}, err
	}
	pos, rotY := e.gizmo.Position, e.gizmo.RotationY
	res := stack.ResolveTop(id, b, pos, rotY, e.store.Boxes())

	next := geo.Vec3{X: pos.X, Y: res.NextY, Z: pos.Z}
	e.store.ReplaceByID(id, func(b box.Box) box.Box { return b.WithPosition(next) })
	e.gizmo.Position = next

	e.events.Emit(events.TransformGoOnTop, events.SourceTransformGizmo, GoOnTopPayload{
		ID:      id,
		NextY:   res.NextY,
		Top:     res.Top,
		Support: res.Support,
	})
	return res, nil
}

// EndTransform finishes a gesture: it drops any pending rotation frame and
// commits the gizmo position and rotation directly, so the final value is
// never lost to coalescing. It emits transform.end.
func (e *Editor) EndTransform(id string) (box.Box, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.attachLocked(id); err != nil {
		return box.Box{}, err
	}
	e.rotation.Cancel()
	e.gesture++

	pos, rotY := e.gizmo.Position, e.gizmo.RotationY
	e.store.ReplaceByID(id, func(b box.Box) box.Box {
		return b.WithPosition(pos).WithRotation(rotY)
	})
	final, _ := e.store.Get(id)

	e.events.Emit(events.TransformEnd, events.SourceTransformGizmo, EndPayload{
		ID:        id,
		Position:  pos,
		RotationY: rotY,
	})
	return final, nil
}

// Scene assembles the current entity list into a scene graph.
func (e *Editor) Scene() *scene.Graph {
	return scene.Assemble(e.name, e.store.Boxes())
}

// Plan projects the current entity list onto the ground plane.
func (e *Editor) Plan() *scene2d.Scene2D {
	return scene2d.Assemble2D(e.name, e.store.Boxes())
}

// ZoomToFit frames the whole scene and emits viewer.zoomToFit. It reports
// false, and emits nothing, when there is no camera or nothing to frame.
func (e *Editor) ZoomToFit() (camera.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return camera.Frame{}, false
	}
	f, ok := camera.FrameScene(e.controls, e.Scene(), e.camera)
	if !ok {
		return camera.Frame{}, false
	}
	e.events.Emit(events.ViewerZoomToFit, events.SourceViewer, f)
	return f, true
}

// View returns the camera position and orbit target. ok is false when the
// editor has no camera hosts.
func (e *Editor) View() (position, target mgl64.Vec3, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.camera == nil || e.controls == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return e.camera.Position(), e.controls.Target(), true
}

// Close cancels any pending rotation frame. Later gestures fail.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.gesture++
	if e.rotation.Cancel() {
		e.logger.Printf("editor: dropped pending rotation on close")
	}
}

// attachLocked looks the box up and moves the gizmo onto it if it is not
// already attached.
func (e *Editor) attachLocked(id string) (box.Box, error) {
	if e.closed {
		return box.Box{}, errors.FailedPreconditionf("editor is closed")
	}
	b, ok := e.store.Get(id)
	if !ok {
		return box.Box{}, errors.NotFoundf("box %q not found", id).WithMeta("box_id", id)
	}
	if e.gizmo.Attached != id {
		// a rotation still waiting for its frame belongs to the old box
		if u, ok := e.rotation.Pending(); ok && e.rotation.Cancel() {
			e.commitRotationLocked(u)
		}
		e.gizmo = Gizmo{
			Attached:  id,
			Position:  b.Position,
			RotationY: b.RotationY,
			Scale:     geo.One,
		}
	}
	return b, nil
}
