package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// ErrInvalidScene is returned when a scene or its image configuration cannot be rendered
var ErrInvalidScene = errors.New("invalid scene")

// ImageConfig contains per-render image settings
type ImageConfig struct {
	Width  int     // Image width in pixels
	Height int     // Image height in pixels
	FOV    float64 // Field of view in radians
}

// DefaultImageConfig returns a 512x512 image with a 60 degree field of view
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		Width:  512,
		Height: 512,
		FOV:    math.Pi / 3,
	}
}

// Validate checks that the configuration is usable by the camera
func (c ImageConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidScene, c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= math.Pi {
		return fmt.Errorf("%w: fov must be in (0, pi) radians, got %f", ErrInvalidScene, c.FOV)
	}
	return nil
}

// Scene contains all the elements needed for rendering. Spheres and lights are
// kept in construction order, which decides nearest-hit ties.
type Scene struct {
	Name    string
	Spheres []*geometry.Sphere
	Lights  []*lights.PointLight
	Config  ImageConfig
}

// NewEmptyScene creates a scene with no objects using the default image config
func NewEmptyScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Spheres: make([]*geometry.Sphere, 0),
		Lights:  make([]*lights.PointLight, 0),
		Config:  DefaultImageConfig(),
	}
}

// AddSphere adds a sphere with a diffuse material
func (s *Scene) AddSphere(center core.Vec3, radius float64, diffuse core.Vec3) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, material.NewMaterial(diffuse)))
}

// AddLight adds a point light
func (s *Scene) AddLight(position core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// GetShapes returns the spheres as shapes, in construction order
func (s *Scene) GetShapes() []geometry.Shape {
	shapes := make([]geometry.Shape, len(s.Spheres))
	for i, sphere := range s.Spheres {
		shapes[i] = sphere
	}
	return shapes
}

// GetLights returns the scene lights
func (s *Scene) GetLights() []*lights.PointLight {
	return s.Lights
}

// Validate checks the image config, sphere radii and light intensities
func (s *Scene) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	for i, sphere := range s.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d has non-positive radius %f", ErrInvalidScene, i, sphere.Radius)
		}
	}
	for i, light := range s.Lights {
		if light.Intensity < 0 {
			return fmt.Errorf("%w: light %d has negative intensity %f", ErrInvalidScene, i, light.Intensity)
		}
	}
	return nil
}
