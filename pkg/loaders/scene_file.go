package loaders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// SceneFile is the TOML representation of a scene
type SceneFile struct {
	Name    string        `toml:"name,omitempty"`
	Width   int           `toml:"width,omitempty"`
	Height  int           `toml:"height,omitempty"`
	FOV     float64       `toml:"fov,omitempty"` // radians
	Spheres []SphereEntry `toml:"sphere"`
	Lights  []LightEntry  `toml:"light"`
}

// SphereEntry is a [[sphere]] table
type SphereEntry struct {
	Center []float64 `toml:"center"`
	Radius float64   `toml:"radius"`
	Color  []float64 `toml:"color"`
}

// LightEntry is a [[light]] table
type LightEntry struct {
	Position  []float64 `toml:"position"`
	Intensity float64   `toml:"intensity"`
}

// LoadSceneFile loads and validates a TOML scene file. The scene is named after
// the file unless the document sets a name.
func LoadSceneFile(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	defaultName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s, err := LoadScene(file, defaultName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadScene decodes a TOML scene document. Missing image settings fall back to
// scene.DefaultImageConfig; unknown keys are rejected.
func LoadScene(r io.Reader, defaultName string) (*scene.Scene, error) {
	var doc SceneFile
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", scene.ErrInvalidScene, undecoded[0].String())
	}

	name := doc.Name
	if name == "" {
		name = defaultName
	}
	s := scene.NewEmptyScene(name)

	if md.IsDefined("width") {
		s.Config.Width = doc.Width
	}
	if md.IsDefined("height") {
		s.Config.Height = doc.Height
	}
	if md.IsDefined("fov") {
		s.Config.FOV = doc.FOV
	}

	for i, entry := range doc.Spheres {
		center, err := toVec3(entry.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d center: %w", i, err)
		}
		color, err := toVec3(entry.Color)
		if err != nil {
			return nil, fmt.Errorf("sphere %d color: %w", i, err)
		}
		s.AddSphere(center, entry.Radius, color)
	}

	for i, entry := range doc.Lights {
		position, err := toVec3(entry.Position)
		if err != nil {
			return nil, fmt.Errorf("light %d position: %w", i, err)
		}
		s.AddLight(position, entry.Intensity)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteScene encodes a scene as a TOML document that LoadScene reads back
func WriteScene(w io.Writer, s *scene.Scene) error {
	doc := SceneFile{
		Name:    s.Name,
		Width:   s.Config.Width,
		Height:  s.Config.Height,
		FOV:     s.Config.FOV,
		Spheres: make([]SphereEntry, 0, len(s.Spheres)),
		Lights:  make([]LightEntry, 0, len(s.Lights)),
	}
	for _, sphere := range s.Spheres {
		doc.Spheres = append(doc.Spheres, SphereEntry{
			Center: fromVec3(sphere.Center),
			Radius: sphere.Radius,
			Color:  fromVec3(sphere.Material.Diffuse()),
		})
	}
	for _, light := range s.Lights {
		doc.Lights = append(doc.Lights, LightEntry{
			Position:  fromVec3(light.Position),
			Intensity: light.Intensity,
		})
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: expected 3 components, got %d", scene.ErrInvalidScene, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func fromVec3(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
