package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests whether the line through the ray passes within Radius of the center.
//
// This is a closest-approach test rather than a quadratic solve. The projection
// onto the direction is not restricted to be positive, so spheres behind the
// origin register as hits, and Distance is the perpendicular miss distance to
// the center instead of the distance along the ray. The direction must be non-zero.
func (s *Sphere) Intersect(ray core.Ray) (*Intersection, bool) {
	direction := ray.Direction.Normalize()

	// Vector from ray origin to sphere center
	originToCenter := s.Center.Subtract(ray.Origin)

	// Signed distance along the line to the foot of the perpendicular
	projection := originToCenter.Dot(direction)

	closestPoint := ray.Origin.Add(direction.Multiply(projection))
	distance := closestPoint.Subtract(s.Center).Length()

	if distance > s.Radius {
		return nil, false
	}

	return &Intersection{
		Point:    closestPoint,
		Distance: distance,
		Material: s.Material,
	}, true
}
