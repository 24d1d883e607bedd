// Package server is the local development server: a JSON API over the
// editor's gestures and a websocket stream of its events.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ChicagoDave/massing/internal/editor"
	"github.com/ChicagoDave/massing/internal/errors"
	"github.com/ChicagoDave/massing/pkg/frame"
	"github.com/ChicagoDave/massing/pkg/project"
)

// Config holds the server's collaborators.
type Config struct {
	Editor *editor.Editor

	// Frames, when set, is run for the server lifetime. It should be the
	// requester the editor was built with.
	Frames *frame.Ticker

	// Document is the loaded scene; /api/validation checks it alongside the
	// live layout.
	Document    *project.Document
	ProjectPath string
	Port        int
	Logger      *log.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Editor == nil {
		vb.RequiredField("Editor")
	}
	if c.Port < 0 || c.Port > 65535 {
		vb.Fieldf("Port", "must be between 0 and 65535, got %d", c.Port)
	}
	return vb.Build()
}

// Server is the local development server for interactive editing.
type Server struct {
	editor      *editor.Editor
	frames      *frame.Ticker
	doc         *project.Document
	projectPath string
	port        int
	log         *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a server from cfg.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		editor:      cfg.Editor,
		frames:      cfg.Frames,
		doc:         cfg.Document,
		projectPath: cfg.ProjectPath,
		port:        cfg.Port,
		log:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev server
		},
		done: make(chan struct{}),
	}, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/plan", s.handlePlan)
	mux.HandleFunc("GET /api/boxes", s.handleBoxes)
	mux.HandleFunc("GET /api/boxes/{id}", s.handleBox)
	mux.HandleFunc("POST /api/boxes/{id}/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/boxes/{id}/rotate", s.handleRotate)
	mux.HandleFunc("POST /api/boxes/{id}/scale", s.handleScale)
	mux.HandleFunc("POST /api/boxes/{id}/stack", s.handleStack)
	mux.HandleFunc("POST /api/boxes/{id}/end", s.handleEnd)
	mux.HandleFunc("GET /api/options", s.handleGetOptions)
	mux.HandleFunc("PUT /api/options", s.handlePutOptions)
	mux.HandleFunc("GET /api/camera", s.handleCamera)
	mux.HandleFunc("POST /api/camera/fit", s.handleFit)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /ws/events", s.handleEventStream)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Start serves until ctx is done, then closes websocket streams, shuts the
// HTTP server down and closes the editor. The frame ticker runs alongside.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.frames != nil {
		go func() { _ = s.frames.Run(ctx) }()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.Printf("Massing server starting on http://localhost%s", addr)
	if s.projectPath != "" {
		s.log.Printf("Project: %s", s.projectPath)
	}

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Printf("Massing server stopped")
	return nil
}

// Close ends every websocket stream and closes the editor.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.editor.Close()
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Massing</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Massing</h1>
<p>Renderer not embedded. The scene is at <code>/api/scene</code>; events stream from <code>/ws/events</code>.</p>
</div>
</body></html>`)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    errors.Code    `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.log.Printf("server: %v", err)
	}
	body := errorBody{Code: code, Message: errors.GetMessage(err)}
	var e *errors.Error
	if errors.As(err, &e) {
		body.Meta = e.Meta
	}
	writeJSON(w, status, body)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidArgumentf("invalid request body: %v", err)
	}
	return nil
}
