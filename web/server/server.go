package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/renderer"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// Server serves rendered frames of a preset scene seen through a camera
// that clients can orbit, pan and dolly
type Server struct {
	port      int
	echo      *echo.Echo
	logger    core.Logger
	textures  scene.Textures
	raytracer *renderer.Raytracer

	console      *consoleLog
	consoleDone  chan struct{}
	shutdownOnce sync.Once

	mu     sync.Mutex
	preset scene.Preset
	camera *renderer.Camera
	frame  int
}

// Options configures a Server
type Options struct {
	Port     int
	Scene    string          // Initial preset
	Textures scene.Textures  // May be nil
	Config   renderer.Config // Zero fields take renderer defaults
	Logger   core.Logger     // May be nil
}

// CameraState is the JSON view of the camera
type CameraState struct {
	Eye    [3]float32 `json:"eye"`
	Center [3]float32 `json:"center"`
	Up     [3]float32 `json:"up"`
	Yaw    float32    `json:"yaw"`
	Pitch  float32    `json:"pitch"`
	FOV    float32    `json:"fov"`
}

// CameraRequest moves the camera. Action is one of orbit, pan, dolly,
// forward or reset; orbit and pan use DX/DY, dolly and forward use Amount.
type CameraRequest struct {
	Action string  `json:"action"`
	DX     float32 `json:"dx"`
	DY     float32 `json:"dy"`
	Amount float32 `json:"amount"`
}

// SceneRequest selects a preset
type SceneRequest struct {
	Scene string `json:"scene"`
}

// SceneResponse describes the active preset
type SceneResponse struct {
	Scene  scene.SceneInfo `json:"scene"`
	Camera CameraState     `json:"camera"`
}

// NewServer creates a new web server
func NewServer(opts Options) (*Server, error) {
	if opts.Scene == "" {
		opts.Scene = scene.Names()[0]
	}
	preset, err := scene.ByName(opts.Scene)
	if err != nil {
		return nil, err
	}

	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(opts.Logger, consoleChan)

	s := &Server{
		port:        opts.Port,
		logger:      logger,
		textures:    opts.Textures,
		raytracer:   renderer.NewRaytracer(opts.Config, logger),
		console:     newConsoleLog(consoleHistory),
		consoleDone: make(chan struct{}),
		preset:      preset,
		camera:      cameraFor(preset),
	}
	go s.console.collect(consoleChan, s.consoleDone)

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(corsMiddleware)
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene", s.handleGetScene)
	s.echo.POST("/api/scene", s.handleSetScene)
	s.echo.GET("/api/camera", s.handleGetCamera)
	s.echo.POST("/api/camera", s.handleMoveCamera)
	s.echo.GET("/api/frame", s.handleFrame)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infof("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server and the console collector. Calling it again
// is harmless.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		close(s.consoleDone)
	})
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		c.Response().Header().Set("Access-Control-Expose-Headers", "X-Frame-ID, X-Frame-Number, X-Render-Time-Ms, X-Primary-Hits")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func cameraFor(p scene.Preset) *renderer.Camera {
	return renderer.NewCamera(p.Camera.Eye, p.Camera.Center, p.Camera.Up)
}

func cameraState(c *renderer.Camera) CameraState {
	return CameraState{
		Eye:    [3]float32(c.Eye),
		Center: [3]float32(c.Center),
		Up:     [3]float32(c.Up),
		Yaw:    c.Yaw(),
		Pitch:  c.Pitch(),
		FOV:    c.FOV,
	}
}

// snapshot copies the state a frame needs so rendering runs without the lock.
// Each call advances the frame counter of animated presets.
func (s *Server) snapshot() (scene.Preset, renderer.Camera, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.frame
	if s.preset.Info.Animated {
		s.frame++
	}
	return s.preset, *s.camera, frame
}

func errorResponse(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListScenes())
}

func (s *Server) handleGetScene(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, SceneResponse{Scene: s.preset.Info, Camera: cameraState(s.camera)})
}

// handleSetScene switches presets and resets the camera to the preset pose
func (s *Server) handleSetScene(c echo.Context) error {
	var req SceneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request: %w", err)))
	}

	preset, err := scene.ByName(req.Scene)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse(err))
	}

	s.mu.Lock()
	s.preset = preset
	s.camera = cameraFor(preset)
	s.frame = 0
	resp := SceneResponse{Scene: preset.Info, Camera: cameraState(s.camera)}
	s.mu.Unlock()

	s.logger.Infof("scene changed to %s", preset.Info.ID)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetCamera(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, cameraState(s.camera))
}

func (s *Server) handleMoveCamera(c echo.Context) error {
	var req CameraRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request: %w", err)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Action {
	case "orbit":
		s.camera.Orbit(req.DX, req.DY)
	case "pan":
		s.camera.Pan(req.DX, req.DY)
	case "dolly":
		s.camera.Dolly(req.Amount)
	case "forward":
		s.camera.MoveForward(req.Amount)
	case "reset":
		s.camera = cameraFor(s.preset)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("unknown camera action %q", req.Action)))
	}
	return c.JSON(http.StatusOK, cameraState(s.camera))
}

func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.recent())
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float32) (float32, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if float32(parsed) < min || float32(parsed) > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return float32(parsed), nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
