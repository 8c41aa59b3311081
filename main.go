package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options collects the command line flags
type options struct {
	sceneName  string
	sceneFile  string
	width      int
	height     int
	fov        float64
	format     string
	outputDir  string
	thumbSize  uint
	upload     bool
	exportPath string
}

func main() {
	sceneName := flag.String("scene", "default", "Built-in scene: 'default', 'spheregrid' or 'empty'")
	sceneFile := flag.String("file", "", "Path to a TOML scene file (overrides -scene)")
	width := flag.Int("width", 0, "Image width override")
	height := flag.Int("height", 0, "Image height override")
	fov := flag.Float64("fov", 0, "Field of view override in radians")
	format := flag.String("format", "", "Output format: 'ppm', 'png' or 'bmp'")
	outputDir := flag.String("out", "", "Output directory")
	thumbSize := flag.Uint("thumb", 0, "Also write a PNG thumbnail no larger than this many pixels")
	upload := flag.Bool("upload", false, "Upload the image to the configured S3 bucket")
	exportPath := flag.String("export", "", "Write the resolved scene as TOML to this path and exit")
	envFile := flag.String("env", ".env", "Environment file to load")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sphere Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<scene>.<format>")
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	opts := options{
		sceneName:  *sceneName,
		sceneFile:  *sceneFile,
		width:      *width,
		height:     *height,
		fov:        *fov,
		format:     *format,
		outputDir:  *outputDir,
		thumbSize:  *thumbSize,
		upload:     *upload,
		exportPath: *exportPath,
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if err := run(context.Background(), cfg, opts, logger); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run resolves the scene, renders it and publishes the encoded image
func run(ctx context.Context, cfg *config.Config, opts options, logger *log.Logger) error {
	s, err := createScene(opts.sceneName, opts.sceneFile)
	if err != nil {
		return err
	}
	applyOverrides(s, opts)
	if err := s.Validate(); err != nil {
		return err
	}

	if opts.exportPath != "" {
		return exportScene(s, opts.exportPath)
	}

	format := cfg.Format
	if opts.format != "" {
		if format, err = output.ParseFormat(opts.format); err != nil {
			return err
		}
	}
	outputDir := cfg.OutputDir
	if opts.outputDir != "" {
		outputDir = opts.outputDir
	}

	sinks := []output.Sink{output.NewFileSink(outputDir)}
	if opts.upload {
		s3Sink, err := cfg.NewS3Sink()
		if err != nil {
			return err
		}
		sinks = append(sinks, s3Sink)
	}

	logger.Printf("Rendering scene %q at %dx%d (fov %.3f rad, %d spheres, %d lights)",
		s.Name, s.Config.Width, s.Config.Height, s.Config.FOV, len(s.Spheres), len(s.Lights))

	raytracer := renderer.NewRaytracer(s, s.Config.Width, s.Config.Height, s.Config.FOV)
	raytracer.SetLogger(logger)
	fb, stats := raytracer.Render()
	logger.Printf("Hit ratio %.1f%%, average luminance %.3f", 100*stats.HitRatio(), fb.AverageLuminance())

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, format); err != nil {
		return err
	}
	if err := output.Publish(ctx, logger, sinks, s.Name+format.Extension(), buf.Bytes(), format.ContentType()); err != nil {
		return err
	}

	if opts.thumbSize > 0 {
		var thumb bytes.Buffer
		if err := png.Encode(&thumb, output.Thumbnail(fb, opts.thumbSize)); err != nil {
			return fmt.Errorf("failed to encode thumbnail: %w", err)
		}
		if err := output.Publish(ctx, logger, sinks, s.Name+"_thumb.png", thumb.Bytes(), output.FormatPNG.ContentType()); err != nil {
			return err
		}
	}

	return nil
}

// createScene loads sceneFile when set, otherwise builds the named built-in scene
func createScene(sceneName, sceneFile string) (*scene.Scene, error) {
	if sceneFile != "" {
		return loaders.LoadSceneFile(sceneFile)
	}
	return scene.NewScene(sceneName)
}

// applyOverrides replaces image settings with any positive command line values
func applyOverrides(s *scene.Scene, opts options) {
	if opts.width > 0 {
		s.Config.Width = opts.width
	}
	if opts.height > 0 {
		s.Config.Height = opts.height
	}
	if opts.fov > 0 {
		s.Config.FOV = opts.fov
	}
}

func exportScene(s *scene.Scene, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return loaders.WriteScene(file, s)
}
