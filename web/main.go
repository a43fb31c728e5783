package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/loaders"
	"github.com/df07/go-diorama-raytracer/pkg/renderer"
	"github.com/df07/go-diorama-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneName := flag.String("scene", "diorama", "Initial scene preset")
	texturesDir := flag.String("textures", "assets", "Directory of texture images")
	maxTexture := flag.Int("max-texture", 512, "Longest texture side after downscaling")
	workers := flag.Int("workers", 0, "Render goroutines (0 = one per CPU)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := core.NewDefaultLogger("web", *debug)

	textures := loaders.NewTextureCache(loaders.TextureOptions{MaxSize: *maxTexture, Mipmaps: true}, logger)
	if _, err := textures.LoadDir(*texturesDir); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	webServer, err := server.NewServer(server.Options{
		Port:     *port,
		Scene:    *sceneName,
		Textures: textures,
		Config:   renderer.Config{Workers: *workers},
		Logger:   logger,
	})
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}()

	logger.Infof("Diorama Raytracer Web Server")
	logger.Infof("Visit http://localhost:%d/api/frame to render", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
