package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

const (
	maxImageSize   = 2000
	consoleBufSize = 16
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        // Scene ID (e.g., "default" or "file:two-spheres")
	Width  int           // Image width, 0 keeps the scene's own
	Height int           // Image height, 0 keeps the scene's own
	FOV    float64       // Field of view in radians, 0 keeps the scene's own
	Format output.Format // Encoding of the returned image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	HitPixels        int     `json:"hitPixels"`
	BackgroundPixels int     `json:"backgroundPixels"`
	HitRatio         float64 `json:"hitRatio"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// RenderInfo is the JSON form of a finished render
type RenderInfo struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	FOV       float64          `json:"fov"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// renderResult carries everything a handler needs from one render
type renderResult struct {
	scene *scene.Scene
	image *renderer.Framebuffer
	stats renderer.RenderStats
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r, output.FormatPNG)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	result, err := s.render(req, core.NopLogger{})
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, result.image, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Encode error: %v", err))
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Hit-Pixels", strconv.Itoa(result.stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderInfo renders a scene and returns JSON with a base64 PNG, stats and the render log
func (s *Server) handleRenderInfo(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r, output.FormatPNG)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, consoleBufSize)
	logger := NewWebLogger(req.Scene, consoleChan)

	startTime := time.Now()
	result, err := s.render(req, logger)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	imageData, err := imageToBase64PNG(result.image)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	close(consoleChan)
	console := make([]ConsoleMessage, 0, len(consoleChan))
	for msg := range consoleChan {
		console = append(console, msg)
	}

	cfg := result.scene.Config
	writeJSON(w, http.StatusOK, RenderInfo{
		Scene:     result.scene.Name,
		Width:     cfg.Width,
		Height:    cfg.Height,
		FOV:       cfg.FOV,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      result.stats.TotalPixels,
			HitPixels:        result.stats.HitPixels,
			BackgroundPixels: result.stats.BackgroundPixels,
			HitRatio:         result.stats.HitRatio(),
			AverageLuminance: result.image.AverageLuminance(),
		},
		Console:   console,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

// render builds the requested scene and renders it with a fresh raytracer
func (s *Server) render(req *RenderRequest, logger core.Logger) (*renderResult, error) {
	sceneObj, err := s.prepareScene(req)
	if err != nil {
		return nil, err
	}
	logger.Printf("Scene %q: %d spheres, %d lights\n", sceneObj.Name, len(sceneObj.Spheres), len(sceneObj.Lights))

	cfg := sceneObj.Config
	raytracer := renderer.NewRaytracer(sceneObj, cfg.Width, cfg.Height, cfg.FOV)
	raytracer.SetLogger(logger)
	fb, stats := raytracer.Render()

	return &renderResult{scene: sceneObj, image: fb, stats: stats}, nil
}

// prepareScene creates the scene and applies the request's image overrides
func (s *Server) prepareScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.Config.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Config.Height = req.Height
	}
	if req.FOV > 0 {
		sceneObj.Config.FOV = req.FOV
	}
	if sceneObj.Config.Width > maxImageSize || sceneObj.Config.Height > maxImageSize {
		return nil, fmt.Errorf("%w: image larger than %dx%d", scene.ErrInvalidScene, maxImageSize, maxImageSize)
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request, defaultFormat output.Format) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: defaultFormat}

	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", 0, 0, math.Pi); err != nil {
		return nil, err
	}
	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// statusForError maps scene resolution errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidScene):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
