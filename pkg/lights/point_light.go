package lights

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// PointLight is a light at a single position with a unitless intensity multiplier
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// Diffuse returns this light's scalar diffuse contribution at a hit.
//
// The hit's Distance is used as the weight instead of a cosine term with the
// surface normal. The result is never negative.
func (l *PointLight) Diffuse(hit *geometry.Intersection) float64 {
	toLight := l.Position.Subtract(hit.Point).Normalize()
	return l.Intensity * math.Max(0, toLight.Multiply(hit.Distance).Length())
}

// TotalDiffuse sums the diffuse contribution of every light
func TotalDiffuse(lights []*PointLight, hit *geometry.Intersection) float64 {
	total := 0.0
	for _, light := range lights {
		total += light.Diffuse(hit)
	}
	return total
}
