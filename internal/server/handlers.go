package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/internal/editor"
	"github.com/ChicagoDave/massing/internal/errors"
	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/events"
	"github.com/ChicagoDave/massing/pkg/geo"
	"github.com/ChicagoDave/massing/pkg/project"
	"github.com/ChicagoDave/massing/pkg/scene"
	"github.com/ChicagoDave/massing/pkg/snap"
	"github.com/ChicagoDave/massing/pkg/validation"
)

// BoxView is a box in document form with its world bounds.
type BoxView struct {
	project.BoxDoc
	Bounds box.Bounds `json:"bounds"`
}

func newBoxView(b box.Box) BoxView {
	return BoxView{BoxDoc: project.FromBox(b), Bounds: box.Compute(b)}
}

type translateRequest struct {
	Position geo.Vec3 `json:"position"`
}

type rotateRequest struct {
	RotationY *float64 `json:"rotationY"`
}

type scaleRequest struct {
	Scale geo.Vec3 `json:"scale"`
}

type scaleResponse struct {
	Scaled bool    `json:"scaled"`
	Box    BoxView `json:"box"`
}

type cameraResponse struct {
	Position mgl64.Vec3   `json:"position"`
	Target   mgl64.Vec3   `json:"target"`
	Gizmo    editor.Gizmo `json:"gizmo"`
}

type fitResponse struct {
	Fitted bool          `json:"fitted"`
	Frame  *camera.Frame `json:"frame,omitempty"`
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Scene())
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Plan())
}

func (s *Server) handleBoxes(w http.ResponseWriter, _ *http.Request) {
	boxes := s.editor.Store().Boxes()
	out := make([]BoxView, len(boxes))
	for i, b := range boxes {
		out[i] = newBoxView(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBox(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b, ok := s.editor.Store().Get(id)
	if !ok {
		s.writeError(w, errors.NotFoundf("box %q not found", id).WithMeta("box_id", id))
		return
	}
	writeJSON(w, http.StatusOK, newBoxView(b))
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	id := r.PathValue("id")
	if _, err := s.editor.Translate(id, req.Position); err != nil {
		s.writeError(w, err)
		return
	}
	b, _ := s.editor.Store().Get(id)
	writeJSON(w, http.StatusOK, newBoxView(b))
}

// handleRotate answers 202: the store commit happens on the next frame.
func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	var req rotateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.RotationY == nil {
		s.writeError(w, errors.NewValidationBuilder().RequiredField("rotationY").Build())
		return
	}
	if err := s.editor.Rotate(r.PathValue("id"), *req.RotationY); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, s.editor.Gizmo())
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	id := r.PathValue("id")
	did, err := s.editor.Scale(id, req.Scale)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, _ := s.editor.Store().Get(id)
	writeJSON(w, http.StatusOK, scaleResponse{Scaled: did, Box: newBoxView(b)})
}

func (s *Server) handleStack(w http.ResponseWriter, r *http.Request) {
	res, err := s.editor.GoOnTop(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	b, err := s.editor.EndTransform(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newBoxView(b))
}

func (s *Server) handleGetOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Options())
}

func (s *Server) handlePutOptions(w http.ResponseWriter, r *http.Request) {
	var opts snap.Options
	if err := decode(r, &opts); err != nil {
		s.writeError(w, err)
		return
	}
	vb := errors.NewValidationBuilder()
	if opts.SnapToGrid && !(opts.GridSize > 0) {
		vb.Fieldf("grid_size", "must be positive while snapping to the grid, got %g", opts.GridSize)
	}
	if opts.SnapDistance < 0 || math.IsNaN(opts.SnapDistance) {
		vb.Fieldf("snap_distance", "must not be negative, got %g", opts.SnapDistance)
	}
	if err := vb.Build(); err != nil {
		s.writeError(w, err)
		return
	}
	s.editor.SetOptions(opts)
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleCamera(w http.ResponseWriter, _ *http.Request) {
	pos, target, ok := s.editor.View()
	if !ok {
		s.writeError(w, errors.NotFoundf("no camera configured"))
		return
	}
	writeJSON(w, http.StatusOK, cameraResponse{Position: pos, Target: target, Gizmo: s.editor.Gizmo()})
}

func (s *Server) handleFit(w http.ResponseWriter, _ *http.Request) {
	f, ok := s.editor.ZoomToFit()
	if !ok {
		writeJSON(w, http.StatusOK, fitResponse{})
		return
	}
	writeJSON(w, http.StatusOK, fitResponse{Fitted: true, Frame: &f})
}

// handleEvents lists the retained events, oldest first. ?since=N keeps only
// events with a larger sequence number.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, errors.InvalidArgumentf("since: %q is not a sequence number", v))
			return
		}
		since = n
	}
	out := []events.Event{}
	for _, ev := range s.editor.Events().Events() {
		if ev.Seq > since {
			out = append(out, ev)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	report := validation.NewReport()
	if s.doc != nil {
		report.Merge(validation.ValidateProject(s.doc))
	}
	report.Merge(validation.ValidateLayout(s.editor.Store().Boxes()))
	report.Merge(scene.ValidateGraph(s.editor.Scene()))
	writeJSON(w, http.StatusOK, report)
}
