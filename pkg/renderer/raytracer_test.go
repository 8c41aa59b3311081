package renderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// MockScene implements Scene for testing
type MockScene struct {
	shapes []geometry.Shape
	lights []*lights.PointLight
}

func (m MockScene) GetShapes() []geometry.Shape      { return m.shapes }
func (m MockScene) GetLights() []*lights.PointLight { return m.lights }

var (
	green = material.NewMaterial(core.NewVec3(0.5, 0.8, 0.3))
	red   = material.NewMaterial(core.NewVec3(1.0, 0.5, 0.5))
	blue  = material.NewMaterial(core.NewVec3(0.1, 0.2, 0.9))
)

// forwardRay runs from the origin down -z; a sphere centered at (d, 0, -10)
// reports distance d for it
var forwardRay = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

func sphereAtDistance(d, radius float64, m material.Material) *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(d, 0, -10), radius, m)
}

func TestRaytracer_HitWorld_Nearest(t *testing.T) {
	near := sphereAtDistance(5, 6, green)
	far := sphereAtDistance(10, 11, red)

	tests := []struct {
		name   string
		shapes []geometry.Shape
	}{
		{"near first", []geometry.Shape{near, far}},
		{"far first", []geometry.Shape{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRaytracer(MockScene{shapes: tt.shapes}, 10, 10, math.Pi/3)

			hit, isHit := rt.hitWorld(forwardRay)
			if !isHit {
				t.Fatal("Expected hit, got miss")
			}
			if hit.Material != green {
				t.Errorf("Expected material of the distance-5 sphere, got %v", hit.Material)
			}
			if math.Abs(hit.Distance-5) > 1e-9 {
				t.Errorf("Expected distance 5, got %f", hit.Distance)
			}
		})
	}
}

func TestRaytracer_HitWorld_TieKeepsFirst(t *testing.T) {
	first := sphereAtDistance(2, 3, blue)
	second := sphereAtDistance(2, 3, red)
	rt := NewRaytracer(MockScene{shapes: []geometry.Shape{first, second}}, 10, 10, math.Pi/3)

	hit, isHit := rt.hitWorld(forwardRay)
	if !isHit {
		t.Fatal("Expected hit, got miss")
	}
	if hit.Material != blue {
		t.Errorf("Expected the first sphere to win a tie, got %v", hit.Material)
	}
}

func TestRaytracer_HitWorld_Cutoff(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		radius    float64
		expectHit bool
	}{
		{"well inside range", 999, 1000, true},
		{"exactly at cutoff", MaxViewDistance, 1000, false},
		{"beyond cutoff", 1500, 2000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := sphereAtDistance(tt.distance, tt.radius, green)
			// The geometric test alone must succeed
			if _, ok := sphere.Intersect(forwardRay); !ok {
				t.Fatal("Sphere should intersect geometrically")
			}

			rt := NewRaytracer(MockScene{shapes: []geometry.Shape{sphere}}, 10, 10, math.Pi/3)
			_, isHit := rt.hitWorld(forwardRay)
			if isHit != tt.expectHit {
				t.Errorf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
		})
	}
}

func TestRaytracer_HitWorld_CutoffAppliesToNearestOnly(t *testing.T) {
	// The nearest candidate is beyond range, so the whole query misses even
	// though it was the only geometric hit
	huge := sphereAtDistance(1200, 1300, red)
	miss := sphereAtDistance(50, 1, green)
	rt := NewRaytracer(MockScene{shapes: []geometry.Shape{miss, huge}}, 10, 10, math.Pi/3)

	if _, isHit := rt.hitWorld(forwardRay); isHit {
		t.Error("Expected no hit when the nearest candidate is beyond the cutoff")
	}
}

func TestRaytracer_HitWorld_Empty(t *testing.T) {
	rt := NewRaytracer(MockScene{}, 10, 10, math.Pi/3)
	if hit, isHit := rt.hitWorld(forwardRay); isHit || hit != nil {
		t.Errorf("Expected no hit for empty scene, got %v", hit)
	}
}

func TestRaytracer_Shade_AddsLightUniformly(t *testing.T) {
	// Each light contributes intensity * distance = 0.2 * 0.5 = 0.1
	scene := MockScene{
		lights: []*lights.PointLight{
			lights.NewPointLight(core.NewVec3(-20, 20, 20), 0.2),
			lights.NewPointLight(core.NewVec3(30, 50, -25), 0.2),
		},
	}
	rt := NewRaytracer(scene, 10, 10, math.Pi/3)

	hit := &geometry.Intersection{
		Point:    core.NewVec3(0, 0, -10),
		Distance: 0.5,
		Material: green,
	}

	color := rt.shade(hit)
	expected := core.NewVec3(0.7, 1.0, 0.5)
	if color.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRaytracer_Shade_NoLights(t *testing.T) {
	rt := NewRaytracer(MockScene{}, 10, 10, math.Pi/3)
	hit := &geometry.Intersection{Distance: 0.5, Material: red}

	if color := rt.shade(hit); color != red.Diffuse() {
		t.Errorf("Expected bare diffuse color %v, got %v", red.Diffuse(), color)
	}
}

func TestRaytracer_BackgroundColor(t *testing.T) {
	rt := NewRaytracer(MockScene{}, 256, 256, math.Pi/3)

	if bg := rt.backgroundColor(0, 0); bg != (core.Vec3{}) {
		t.Errorf("Expected black background at (0,0), got %v", bg)
	}

	bg := rt.backgroundColor(64, 128)
	expected := core.NewVec3(128.0/256.0, 64.0/256.0, 192.0/512.0)
	if bg.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, bg)
	}
}

func TestVec3ToRGB(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected [3]uint8
	}{
		{"over one clamps to 255", core.NewVec3(1.4, 1.0, 2.0), [3]uint8{255, 255, 255}},
		{"negative clamps to 0", core.NewVec3(-0.2, 0, -5), [3]uint8{0, 0, 0}},
		{"truncates", core.NewVec3(0.5, 0.999, 0.1), [3]uint8{127, 254, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := vec3ToRGB(tt.color)
			if [3]uint8{r, g, b} != tt.expected {
				t.Errorf("Expected %v, got [%d %d %d]", tt.expected, r, g, b)
			}
		})
	}
}

func TestRaytracer_Render_EmptySceneIsBackground(t *testing.T) {
	width, height := 256, 256
	rt := NewRaytracer(MockScene{}, width, height, math.Pi/3)

	fb, stats := rt.Render()

	if len(fb.Bytes()) != 3*width*height {
		t.Fatalf("Expected %d bytes, got %d", 3*width*height, len(fb.Bytes()))
	}
	if stats.BackgroundPixels != width*height || stats.HitPixels != 0 {
		t.Errorf("Expected all background pixels, got %+v", stats)
	}

	if r, g, b := fb.RGB(0, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected (0,0,0) at pixel (0,0), got (%d,%d,%d)", r, g, b)
	}

	// Row-major: pixel (i=100, j=10) lives at offset 3*(10*256+100)
	r, g, b := fb.RGB(100, 10)
	er, eg, eb := vec3ToRGB(core.NewVec3(10.0/256.0, 100.0/256.0, 110.0/512.0))
	if r != er || g != eg || b != eb {
		t.Errorf("Expected (%d,%d,%d), got (%d,%d,%d)", er, eg, eb, r, g, b)
	}
	if fb.Pix[3*(10*256+100)] != r {
		t.Error("Pixel bytes are not in row-major order")
	}
}

func TestRaytracer_Render_CenterHitsSphere(t *testing.T) {
	scene := MockScene{
		shapes: []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 0, -16), 2, green)},
		lights: []*lights.PointLight{lights.NewPointLight(core.NewVec3(-20, 20, 20), 0.05)},
	}
	rt := NewRaytracer(scene, 33, 33, math.Pi/3)

	fb, stats := rt.Render()
	if stats.HitPixels == 0 {
		t.Fatal("Expected some pixels to hit the sphere")
	}
	if stats.TotalPixels != stats.HitPixels+stats.BackgroundPixels {
		t.Errorf("Stats do not add up: %+v", stats)
	}

	// The central ray passes through the center, so distance is 0 and no light is added
	r, g, b := fb.RGB(16, 16)
	er, eg, eb := vec3ToRGB(green.Diffuse())
	if r != er || g != eg || b != eb {
		t.Errorf("Expected center pixel (%d,%d,%d), got (%d,%d,%d)", er, eg, eb, r, g, b)
	}
}

func TestRaytracer_Render_Deterministic(t *testing.T) {
	scene := MockScene{
		shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(-3, 0, -16), 2, green),
			geometry.NewSphere(core.NewVec3(2, 1, -16), 5, red),
		},
		lights: []*lights.PointLight{
			lights.NewPointLight(core.NewVec3(-20, 20, 20), 0.05),
			lights.NewPointLight(core.NewVec3(30, 50, -25), 0.03),
		},
	}

	first, _ := NewRaytracer(scene, 64, 48, math.Pi/3).Render()
	second, _ := NewRaytracer(scene, 64, 48, math.Pi/3).Render()

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Rendering the same scene twice produced different output")
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestRaytracer_Render_LogsSummary(t *testing.T) {
	logger := &recordingLogger{}
	rt := NewRaytracer(MockScene{}, 4, 4, math.Pi/3)
	rt.SetLogger(logger)
	rt.Render()

	if len(logger.lines) != 1 {
		t.Errorf("Expected one summary line, got %d", len(logger.lines))
	}

	// nil resets to a silent logger
	rt.SetLogger(nil)
	rt.Render()
}

func TestRaytracer_TracePixel_MatchesRender(t *testing.T) {
	scene := MockScene{
		shapes: []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 0, -16), 2, green)},
	}
	rt := NewRaytracer(scene, 33, 33, math.Pi/3)
	fb, _ := rt.Render()

	for _, p := range [][2]int{{16, 16}, {0, 0}, {32, 10}} {
		hit, color, isHit := rt.TracePixel(p[0], p[1])
		if isHit != (hit != nil) {
			t.Errorf("Pixel %v: hit flag %v disagrees with record %v", p, isHit, hit)
		}
		r, g, b := fb.RGB(p[0], p[1])
		er, eg, eb := vec3ToRGB(color)
		if r != er || g != eg || b != eb {
			t.Errorf("Pixel %v: TracePixel color (%d,%d,%d) differs from frame (%d,%d,%d)", p, er, eg, eb, r, g, b)
		}
	}

	if _, _, isHit := rt.TracePixel(16, 16); !isHit {
		t.Error("Expected the center pixel to hit the sphere")
	}
	if _, _, isHit := rt.TracePixel(0, 0); isHit {
		t.Error("Expected the corner pixel to miss")
	}
}
