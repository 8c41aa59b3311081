package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	SphereIndex int                    `json:"sphereIndex"` // -1 when nothing was hit
	Point       [3]float64             `json:"point"`
	Distance    float64                `json:"distance"`
	Color       [3]float64             `json:"color"` // Unclamped pixel color
	Hex         string                 `json:"hex"`
	Properties  map[string]interface{} `json:"properties"`
}

// InspectResult contains the hit record and the sphere that produced it
type InspectResult struct {
	Hit         bool
	HitRecord   *geometry.Intersection
	Color       core.Vec3
	SphereIndex int
}

// inspectPixel traces a single pixel and reports which sphere, if any, it shows
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	cfg := sceneObj.Config
	raytracer := renderer.NewRaytracer(sceneObj, cfg.Width, cfg.Height, cfg.FOV)

	hit, color, isHit := raytracer.TracePixel(pixelX, pixelY)
	if !isHit {
		return InspectResult{Color: color, SphereIndex: -1}
	}

	// The hit record does not name its sphere, so find the first one
	// reporting the same distance
	ray := raytracer.Camera().GetRay(pixelX, pixelY)
	for i, sphere := range sceneObj.Spheres {
		if sphereHit, ok := sphere.Intersect(ray); ok && sphereHit.Distance == hit.Distance {
			return InspectResult{Hit: true, HitRecord: hit, Color: color, SphereIndex: i}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit, Color: color, SphereIndex: -1}
}

// extractSphereInfo describes the sphere at index in the scene
func extractSphereInfo(sceneObj *scene.Scene, index int) map[string]interface{} {
	properties := make(map[string]interface{})
	if index < 0 || index >= len(sceneObj.Spheres) {
		return properties
	}

	sphere := sceneObj.Spheres[index]
	diffuse := sphere.Material.Diffuse()
	properties["center"] = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
	properties["radius"] = sphere.Radius
	properties["diffuse"] = [3]float64{diffuse.X, diffuse.Y, diffuse.Z}
	return properties
}

// handleInspect handles pixel inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.prepareScene(inspectReq)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	cfg := sceneObj.Config
	if pixelX < 0 || pixelX >= cfg.Width || pixelY < 0 || pixelY >= cfg.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	clamped := result.Color.Clamp(0, 1)
	response := InspectResponse{
		Hit:         result.Hit,
		SphereIndex: result.SphereIndex,
		Color:       [3]float64{result.Color.X, result.Color.Y, result.Color.Z},
		Hex: fmt.Sprintf("#%02x%02x%02x",
			uint8(255*clamped.X), uint8(255*clamped.Y), uint8(255*clamped.Z)),
		Properties: extractSphereInfo(sceneObj, result.SphereIndex),
	}
	if result.Hit {
		p := result.HitRecord.Point
		response.Point = [3]float64{p.X, p.Y, p.Z}
		response.Distance = result.HitRecord.Distance
	}

	writeJSON(w, http.StatusOK, response)
}
