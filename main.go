package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/loaders"
	"github.com/df07/go-diorama-raytracer/pkg/output"
	"github.com/df07/go-diorama-raytracer/pkg/renderer"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// cliFlags are the options that only make sense on the command line
type cliFlags struct {
	list        bool
	printConfig bool
}

func main() {
	cfg, cli, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cli.list {
		listScenes(os.Stdout)
		return
	}
	if cli.printConfig {
		data, err := cfg.YAML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	logger := core.NewDefaultLogger("raytracer", cfg.Debug)
	logSystemInfo(logger)

	textures := loaders.NewTextureCache(loaders.TextureOptions{MaxSize: cfg.MaxTextureSize, Mipmaps: true}, logger)
	if _, err := textures.LoadDir(cfg.TexturesDir); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	files, err := renderFrames(ctx, cfg, textures, logger)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("wrote %d frame(s) to %s", len(files), cfg.OutputDir)
}

// parseFlags loads the optional -config file and overlays any flags that were
// set explicitly
func parseFlags(args []string, stderr io.Writer) (loaders.RenderConfig, cliFlags, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := loaders.DefaultRenderConfig()
	var cli cliFlags
	var (
		configPath = fs.String("config", "", "YAML render configuration file")
		sceneName  = fs.String("scene", def.Scene, "Scene preset: "+strings.Join(scene.Names(), ", "))
		width      = fs.Int("width", def.Width, "Image width in pixels")
		height     = fs.Int("height", def.Height, "Image height in pixels")
		frames     = fs.Int("frames", def.Frames, "Number of frames to render")
		orbit      = fs.Float64("orbit", float64(def.OrbitStep), "Camera yaw step per frame in radians")
		depth      = fs.Int("depth", def.MaxDepth, "Maximum reflection/refraction depth")
		workers    = fs.Int("workers", def.Workers, "Render goroutines (0 = one per CPU)")
		sequential = fs.Bool("sequential", !def.Parallel, "Render on a single goroutine")
		textures   = fs.String("textures", def.TexturesDir, "Directory of texture images")
		maxTexture = fs.Int("max-texture", def.MaxTextureSize, "Longest texture side after downscaling")
		outDir     = fs.String("out", def.OutputDir, "Output directory")
		format     = fs.String("format", def.Format, "Output format: png or raw")
		bloom      = fs.Bool("bloom", def.Bloom.Enabled, "Apply the bloom post-process")
		hud        = fs.Bool("hud", def.HUD, "Draw the statistics overlay")
		debug      = fs.Bool("debug", def.Debug, "Enable debug logging")
	)
	fs.BoolVar(&cli.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&cli.printConfig, "print-config", false, "Print the effective configuration as YAML and exit")

	if err := fs.Parse(args); err != nil {
		return loaders.RenderConfig{}, cli, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := loaders.LoadRenderConfig(*configPath)
		if err != nil {
			return loaders.RenderConfig{}, cli, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "frames":
			cfg.Frames = *frames
		case "orbit":
			cfg.OrbitStep = float32(*orbit)
		case "depth":
			cfg.MaxDepth = *depth
		case "workers":
			cfg.Workers = *workers
		case "sequential":
			cfg.Parallel = !*sequential
		case "textures":
			cfg.TexturesDir = *textures
		case "max-texture":
			cfg.MaxTextureSize = *maxTexture
		case "out":
			cfg.OutputDir = *outDir
		case "format":
			cfg.Format = *format
		case "bloom":
			cfg.Bloom.Enabled = *bloom
		case "hud":
			cfg.HUD = *hud
		case "debug":
			cfg.Debug = *debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return loaders.RenderConfig{}, cli, err
	}
	if _, err := scene.ByName(cfg.Scene); err != nil {
		return loaders.RenderConfig{}, cli, err
	}
	return cfg, cli, nil
}

func listScenes(w io.Writer) {
	for _, group := range scene.ListScenes().Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-10s %s\n", info.ID, info.Description)
		}
	}
}

// logSystemInfo logs the CPU model, core count and memory of the host
func logSystemInfo(logger core.Logger) {
	cpuName := "unknown CPU"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		cpuName = fmt.Sprintf("%s @ %.2f GHz", info[0].ModelName, info[0].Mhz/1000)
	}

	totalRAM := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		totalRAM = fmt.Sprintf("%d GB", vm.Total/(1024*1024*1024))
	}

	logger.Infof("system: %s, %d logical cores, %s RAM", cpuName, defaultWorkers(), totalRAM)
}

// defaultWorkers returns the logical core count
func defaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// initialCamera returns the configured pose, or the preset's own
func initialCamera(cfg loaders.RenderConfig, preset scene.Preset) *renderer.Camera {
	if c := cfg.Camera; c != nil {
		return renderer.NewCamera(core.Vec3(c.Eye), core.Vec3(c.Center), core.Vec3(c.Up))
	}
	return renderer.NewCamera(preset.Camera.Eye, preset.Camera.Center, preset.Camera.Up)
}

// renderFrames renders cfg.Frames frames, orbiting the camera between them
// and rebuilding the scene for each frame. It returns the written file paths.
func renderFrames(ctx context.Context, cfg loaders.RenderConfig, textures scene.Textures, logger core.Logger) ([]string, error) {
	preset, err := scene.ByName(cfg.Scene)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = defaultWorkers()
	}
	rt := renderer.NewRaytracer(renderer.Config{MaxDepth: cfg.MaxDepth, Workers: workers}, logger)
	camera := initialCamera(cfg, preset)

	fb, err := renderer.NewFrameBuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	var files []string
	for frame := 0; frame < cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return files, fmt.Errorf("interrupted before frame %d: %w", frame, err)
		}

		sc := preset.Build(scene.BuildContext{Textures: textures, Frame: frame})

		var stats renderer.RenderStats
		if cfg.Parallel {
			stats, err = rt.RenderParallelContext(ctx, fb, sc, camera)
		} else {
			stats, err = rt.Render(fb, sc, camera)
		}
		if err != nil {
			return files, fmt.Errorf("frame %d: %w", frame, err)
		}

		if cfg.Bloom.Enabled {
			renderer.ApplyBloom(fb, cfg.Bloom.Threshold, cfg.Bloom.Intensity)
		}

		path, err := writeFrame(cfg, preset.Info.ID, frame, fb, stats)
		if err != nil {
			return files, err
		}
		files = append(files, path)
		logger.Infof("frame %d/%d: %s -> %s", frame+1, cfg.Frames, stats, path)

		camera.Orbit(cfg.OrbitStep, 0)
	}
	return files, nil
}

// writeFrame saves one frame in the configured format. The HUD is drawn on
// PNG output only; raw dumps hold the unmodified frame buffer.
func writeFrame(cfg loaders.RenderConfig, sceneName string, frame int, fb *renderer.FrameBuffer, stats renderer.RenderStats) (string, error) {
	path := output.FramePath(cfg.OutputDir, sceneName, frame, cfg.Format)

	switch cfg.Format {
	case loaders.FormatRaw:
		return path, output.WriteRaw(path, fb)
	default:
		img := fb.ToImage()
		if cfg.HUD {
			output.DrawHUD(img, output.HUDLines(sceneName, frame, stats))
		}
		return path, output.WritePNG(path, img)
	}
}
