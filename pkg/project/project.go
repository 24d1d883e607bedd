// Package project loads a scene project: a directory holding scene.yaml with
// the snapping options, the camera setup and the initial box list.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/massing/pkg/snap"
)

// FileName is the scene document inside a project directory.
const FileName = "scene.yaml"

// Document is a parsed scene.yaml.
type Document struct {
	Version  string        `yaml:"version" json:"version"`
	Name     string        `yaml:"name" json:"name"`
	Building *snap.Options `yaml:"building" json:"building,omitempty"`
	Camera   CameraDoc     `yaml:"camera" json:"camera"`
	Boxes    []BoxDoc      `yaml:"boxes" json:"boxes"`
}

// CameraDoc is the initial camera setup.
type CameraDoc struct {
	Projection string    `yaml:"projection" json:"projection,omitempty"`
	FOV        float64   `yaml:"fov" json:"fov,omitempty"`
	Aspect     float64   `yaml:"aspect" json:"aspect,omitempty"`
	Position   []float64 `yaml:"position" json:"position,omitempty"`
	Target     []float64 `yaml:"target" json:"target,omitempty"`
}

// BoxDoc is one box as written in the document. Footprint and Size are
// alternatives; a nil Footprint means the key was absent.
type BoxDoc struct {
	ID        string      `yaml:"id" json:"id"`
	Type      string      `yaml:"type" json:"type"`
	Position  []float64   `yaml:"position" json:"position"`
	RotationY float64     `yaml:"rotation_y" json:"rotation_y,omitempty"`
	Footprint [][]float64 `yaml:"footprint" json:"footprint,omitempty"`
	Height    float64     `yaml:"height" json:"height,omitempty"`
	Size      []float64   `yaml:"size" json:"size,omitempty"`
	Vertices  [][]float64 `yaml:"vertices" json:"vertices,omitempty"`
}

// Options returns the snapping options, or snap.DefaultOptions when the
// document has no building section.
func (d *Document) Options() snap.Options {
	if d.Building == nil {
		return snap.DefaultOptions()
	}
	return *d.Building
}

// Parse checks data against the scene schema and decodes it.
func Parse(data []byte) (*Document, error) {
	if err := CheckStructure(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene YAML: %w", err)
	}
	return &doc, nil
}

// Load reads a scene document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// LoadProject loads the scene document from a project directory.
// It looks for scene.yaml in the given directory.
func LoadProject(projectDir string) (*Document, error) {
	return Load(filepath.Join(projectDir, FileName))
}
