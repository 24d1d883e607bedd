package editor

import "github.com/ChicagoDave/massing/pkg/geo"

// RotatePayload is the payload of transform.rotate.change.
type RotatePayload struct {
	ID        string  `json:"id"`
	RotationY float64 `json:"rotationY"`
}

// GoOnTopPayload is the payload of transform.goOnTop.
type GoOnTopPayload struct {
	ID      string   `json:"id"`
	NextY   float64  `json:"nextY"`
	Top     float64  `json:"top"`
	Support []string `json:"support,omitempty"`
}

// EndPayload is the payload of transform.end.
type EndPayload struct {
	ID        string   `json:"id"`
	Position  geo.Vec3 `json:"position"`
	RotationY float64  `json:"rotationY"`
}
