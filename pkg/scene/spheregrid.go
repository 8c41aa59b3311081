package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a wall of spheres facing the camera, with hue
// varying across columns and chroma across rows
func NewSphereGridScene() *Scene {
	s := NewEmptyScene("spheregrid")
	s.Config.Width = 640
	s.Config.Height = 360

	columns, rows := 9, 5
	spacing := 2.5
	radius := spacing * 0.4
	depth := -30.0

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < columns; i++ {
		for j := 0; j < rows; j++ {
			x := (float64(i) - float64(columns-1)/2) * spacing
			y := (float64(j) - float64(rows-1)/2) * spacing

			hue := (float64(i) / float64(columns-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(rows-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			s.AddSphere(core.NewVec3(x, y, depth), radius, oklchToRGB(lightness, chroma, hue))
		}
	}

	s.AddLight(core.NewVec3(20, 25, 20), 0.04)

	return s
}
