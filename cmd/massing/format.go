package main

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/camera"
	"github.com/ChicagoDave/massing/pkg/stack"
	"github.com/ChicagoDave/massing/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
			if e.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			printResult(w, wr)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, res validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
	if res.Path != "" {
		fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printBoundsTable(w io.Writer, boxes []box.Box) {
	fmt.Fprintf(w, "%-12s %-10s %9s %9s %9s %9s %9s %9s\n",
		"ID", "Kind", "Min X", "Max X", "Min Y", "Max Y", "Min Z", "Max Z")
	fmt.Fprintf(w, "%-12s %-10s %9s %9s %9s %9s %9s %9s\n",
		"------------", "----------", "---------", "---------", "---------", "---------", "---------", "---------")

	for _, b := range boxes {
		bb := box.Compute(b)
		fmt.Fprintf(w, "%-12s %-10s %9.3f %9.3f %9.3f %9.3f %9.3f %9.3f\n",
			b.ID, b.Kind, bb.MinX, bb.MaxX, bb.MinY, bb.MaxY, bb.MinZ, bb.MaxZ)
	}
}

func printStackResult(w io.Writer, id string, currentY float64, res stack.Result) {
	if len(res.Support) == 0 {
		fmt.Fprintf(w, "%s rests on the ground\n", id)
	} else {
		fmt.Fprintf(w, "%s rests on %v at %.3f\n", id, res.Support, res.Top)
	}
	fmt.Fprintf(w, "  y: %.3f -> %.3f\n", currentY, res.NextY)
}

func printFrame(w io.Writer, f camera.Frame, pos, target mgl64.Vec3) {
	fmt.Fprintln(w, "Camera Frame")
	fmt.Fprintln(w, "============")
	fmt.Fprintf(w, "  Center:    %s\n", formatVec(f.Center))
	fmt.Fprintf(w, "  Size:      %s\n", formatVec(f.Size))
	fmt.Fprintf(w, "  Distance:  %.3f\n", f.Distance)
	fmt.Fprintf(w, "  Position:  %s\n", formatVec(pos))
	fmt.Fprintf(w, "  Target:    %s\n", formatVec(target))
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
}
