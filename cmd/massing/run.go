package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ChicagoDave/massing/internal/editor"
	"github.com/ChicagoDave/massing/internal/pkg/clock"
	"github.com/ChicagoDave/massing/internal/pkg/idgen"
	"github.com/ChicagoDave/massing/internal/server"
	"github.com/ChicagoDave/massing/internal/store"
	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/events"
	"github.com/ChicagoDave/massing/pkg/frame"
	"github.com/ChicagoDave/massing/pkg/project"
	"github.com/ChicagoDave/massing/pkg/scene"
	"github.com/ChicagoDave/massing/pkg/scene2d"
	"github.com/ChicagoDave/massing/pkg/stack"
	"github.com/ChicagoDave/massing/pkg/validation"
)

var errInvalid = errors.New("scene has validation errors")

// loadAndValidate loads the project, converts its boxes and runs the
// document and layout checks. Boxes without an id are numbered in document
// order so repeated runs print the same ids.
func loadAndValidate(projectPath string, gen idgen.Generator) (*project.Document, []box.Box, *validation.Report, error) {
	doc, err := project.LoadProject(projectPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading scene: %w", err)
	}
	report := validation.ValidateProject(doc)
	boxes := doc.Entities(gen)
	report.Merge(validation.ValidateLayout(boxes))
	return doc, boxes, report, nil
}

func runValidate(w io.Writer, projectPath string) error {
	_, _, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	printValidationReport(w, report)
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runBounds(w io.Writer, projectPath string) error {
	_, boxes, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}
	printBoundsTable(w, boxes)
	return nil
}

func runStack(w io.Writer, projectPath, id string) error {
	_, boxes, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}
	i := box.Find(boxes, id)
	if i < 0 {
		return fmt.Errorf("box %q not found", id)
	}
	b := boxes[i]
	printStackResult(w, id, b.Position.Y, stack.ResolveTop(id, b, b.Position, b.RotationY, boxes))
	return nil
}

func runFit(w io.Writer, projectPath string) error {
	doc, boxes, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}
	cam, controls := doc.Camera.Build()
	f, ok := camera.FrameScene(controls, scene.Assemble(doc.Name, boxes), cam)
	if !ok {
		fmt.Fprintln(w, "Nothing to frame.")
		return nil
	}
	printFrame(w, f, cam.Position(), controls.Target())
	return nil
}

// runScene prints the assembled scene graph with its validation, like the
// renderer would receive it.
func runScene(w io.Writer, projectPath string) error {
	doc, boxes, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}
	graph := scene.Assemble(doc.Name, boxes)
	report.Merge(scene.ValidateGraph(graph))

	output := map[string]any{
		"scene_graph": graph,
		"validation":  report,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runPlan(w io.Writer, projectPath string) error {
	doc, boxes, report, err := loadAndValidate(projectPath, idgen.NewSequential("box"))
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalid
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scene2d.Assemble2D(doc.Name, boxes))
}

type serveOptions struct {
	port     int
	fps      int
	mode     string
	eventDir string
}

func runServe(ctx context.Context, projectPath string, opts serveOptions) error {
	mode, err := frame.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	doc, boxes, report, err := loadAndValidate(projectPath, nil)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(os.Stdout, report)
		return errInvalid
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	clk := clock.New()
	evs := events.NewLog(events.DefaultCapacity, clk, logger)
	if opts.eventDir != "" {
		sink := events.NewJSONLZstdWriter(opts.eventDir, "events", clk)
		defer sink.Close()
		evs.AddSink(sink)
		logger.Printf("Writing events under %s", opts.eventDir)
	}

	ticker := frame.NewTicker(opts.fps)
	cam, controls := doc.Camera.Build()
	ed, err := editor.New(&editor.Config{
		Store:    store.New(boxes),
		Frames:   ticker,
		Events:   evs,
		Options:  doc.Options(),
		Mode:     mode,
		Camera:   cam,
		Controls: controls,
		Name:     doc.Name,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Editor:      ed,
		Frames:      ticker,
		Document:    doc,
		ProjectPath: projectPath,
		Port:        opts.port,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
