package scene

import "github.com/df07/go-sphere-raytracer/pkg/core"

// NewDefaultScene creates the two-sphere scene: a small chartreuse sphere on the
// left and a large red one on the right, lit by two point lights
func NewDefaultScene() *Scene {
	s := NewEmptyScene("default")

	chartreuse := core.NewVec3(0.5, 0.8, 0.3)
	red := core.NewVec3(1.0, 0.5, 0.5)

	s.AddSphere(core.NewVec3(-3, 0, -16), 2, chartreuse)
	s.AddSphere(core.NewVec3(2, 1, -16), 5, red)

	s.AddLight(core.NewVec3(-20, 20, 20), 0.05)
	s.AddLight(core.NewVec3(30, 50, -25), 0.03)

	return s
}
