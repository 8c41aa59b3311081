package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Camera is a fixed pinhole camera at the world origin looking down -z
type Camera struct {
	width      int
	height     int
	fov        float64 // Field of view in radians
	tanHalfFov float64
	aspect     float64
}

// NewCamera creates a camera for an image of the given size and field of view (radians)
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		width:      width,
		height:     height,
		fov:        fov,
		tanHalfFov: math.Tan(fov / 2),
		aspect:     float64(width) / float64(height),
	}
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return core.Vec3{}
}

// FOV returns the field of view in radians
func (c *Camera) FOV() float64 {
	return c.fov
}

// Direction returns the normalized direction through the center of pixel (i, j)
func (c *Camera) Direction(i, j int) core.Vec3 {
	w := float64(c.width)
	h := float64(c.height)

	x := (2*(float64(i)+0.5)/w - 1) * c.tanHalfFov * c.aspect
	y := -(2*(float64(j)+0.5)/h - 1) * c.tanHalfFov

	return core.NewVec3(x, y, -1).Normalize()
}

// GetRay generates the primary ray for pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	return core.NewRay(c.Origin(), c.Direction(i, j))
}
