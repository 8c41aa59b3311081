package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Intersection contains information about a ray-object intersection.
// It lives only for the evaluation of a single pixel.
type Intersection struct {
	Point    core.Vec3         // Closest point on the ray's line to the object
	Distance float64           // Perpendicular distance from that point to the object's center
	Material material.Material // Copy of the hit object's material
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Intersect(ray core.Ray) (*Intersection, bool)
}
