package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Environment file to load")
	addr := flag.String("addr", "", "Address to serve on (overrides SERVER_ADDRESS)")
	scenesDir := flag.String("scenes", "", "Directory of TOML scene files (overrides RAYTRACER_SCENES_DIR)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ServerAddress = *addr
	}
	if *scenesDir != "" {
		cfg.ScenesDir = *scenesDir
	}

	// Create and start web server
	webServer := server.NewServer(cfg)

	log.Printf("Sphere Raytracer Web Server")
	log.Printf("Render with http://localhost%s/api/render?scene=default", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
