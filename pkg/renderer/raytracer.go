package renderer

import (
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
)

// MaxViewDistance bounds the world: nearer hits at or beyond it show the background
const MaxViewDistance = 1000.0

// Scene interface to avoid circular imports
type Scene interface {
	GetShapes() []geometry.Shape
	GetLights() []*lights.PointLight
}

// Raytracer renders a scene one pixel at a time
type Raytracer struct {
	shapes []geometry.Shape
	lights []*lights.PointLight
	camera *Camera
	width  int
	height int
	logger core.Logger
}

// NewRaytracer creates a new raytracer. fov is in radians.
// The scene's shapes and lights are captured once and read-only afterwards.
func NewRaytracer(scene Scene, width, height int, fov float64) *Raytracer {
	return &Raytracer{
		shapes: scene.GetShapes(),
		lights: scene.GetLights(),
		camera: NewCamera(width, height, fov),
		width:  width,
		height: height,
		logger: core.NopLogger{},
	}
}

// SetLogger sets the logger used for the frame summary
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// hitWorld tests every shape and keeps the intersection with the smallest distance.
// The first shape wins a tie. The nearest hit is rejected at or beyond MaxViewDistance.
func (rt *Raytracer) hitWorld(ray core.Ray) (*geometry.Intersection, bool) {
	var closestHit *geometry.Intersection

	for _, shape := range rt.shapes {
		hit, isHit := shape.Intersect(ray)
		if !isHit {
			continue
		}
		if closestHit == nil || hit.Distance < closestHit.Distance {
			closestHit = hit
		}
	}

	if closestHit == nil || closestHit.Distance >= MaxViewDistance {
		return nil, false
	}
	return closestHit, true
}

// shade adds the summed light contribution uniformly to the material's diffuse color
func (rt *Raytracer) shade(hit *geometry.Intersection) core.Vec3 {
	diffuseIntensity := lights.TotalDiffuse(rt.lights, hit)
	return hit.Material.Diffuse().AddScalar(diffuseIntensity)
}

// backgroundColor returns the gradient shown for pixel (i, j) when nothing is hit
func (rt *Raytracer) backgroundColor(i, j int) core.Vec3 {
	return core.NewVec3(
		float64(j)/float64(rt.height),
		float64(i)/float64(rt.width),
		float64(i+j)/float64(rt.height+rt.width),
	)
}

// pixelColor returns the unclamped color of pixel (i, j) and whether it hit anything
func (rt *Raytracer) pixelColor(i, j int) (core.Vec3, bool) {
	ray := rt.camera.GetRay(i, j)

	hit, isHit := rt.hitWorld(ray)
	if !isHit {
		return rt.backgroundColor(i, j), false
	}
	return rt.shade(hit), true
}

// TracePixel traces pixel (i, j) and returns the hit record, if any, with its unclamped color
func (rt *Raytracer) TracePixel(i, j int) (*geometry.Intersection, core.Vec3, bool) {
	ray := rt.camera.GetRay(i, j)

	hit, isHit := rt.hitWorld(ray)
	if !isHit {
		return nil, rt.backgroundColor(i, j), false
	}
	return hit, rt.shade(hit), true
}

// Render evaluates every pixel in row-major order and returns the finished frame
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	startTime := time.Now()
	fb := NewFramebuffer(rt.width, rt.height)
	stats := RenderStats{TotalPixels: rt.width * rt.height}

	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			color, isHit := rt.pixelColor(i, j)
			if isHit {
				stats.HitPixels++
			} else {
				stats.BackgroundPixels++
			}
			fb.append(vec3ToRGB(color))
		}
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Rendered %dx%d in %v: %d hit, %d background\n",
		rt.width, rt.height, stats.Duration, stats.HitPixels, stats.BackgroundPixels)

	return fb, stats
}
