package server

import (
	"bytes"
	"image"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-diorama-raytracer/pkg/output"
	"github.com/df07/go-diorama-raytracer/pkg/renderer"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

const (
	minFrameSize = 16
	maxFrameSize = 2000
)

// FrameRequest represents the query parameters of GET /api/frame
type FrameRequest struct {
	Width          int
	Height         int
	Bloom          bool
	BloomThreshold float32
	BloomIntensity float32
	HUD            bool
}

// parseFrameRequest parses and validates the frame query
func parseFrameRequest(values url.Values) (*FrameRequest, error) {
	req := &FrameRequest{}

	var err error
	if req.Width, req.Height, err = frameSize(values); err != nil {
		return nil, err
	}
	if req.Bloom, err = parseBoolParam(values, "bloom", false); err != nil {
		return nil, err
	}
	if req.BloomThreshold, err = parseFloatParam(values, "bloomThreshold", 0.8, 0, 1); err != nil {
		return nil, err
	}
	if req.BloomIntensity, err = parseFloatParam(values, "bloomIntensity", 0.6, 0, 4); err != nil {
		return nil, err
	}
	if req.HUD, err = parseBoolParam(values, "hud", false); err != nil {
		return nil, err
	}
	return req, nil
}

// handleFrame renders one frame with the current camera and returns it as a PNG
func (s *Server) handleFrame(c echo.Context) error {
	req, err := parseFrameRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err))
	}

	preset, camera, frame := s.snapshot()
	sc := preset.Build(scene.BuildContext{Textures: s.textures, Frame: frame})

	fb, err := renderer.NewFrameBuffer(req.Width, req.Height)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err))
	}

	// Client disconnects cancel the render between rows
	stats, err := s.raytracer.RenderParallelContext(c.Request().Context(), fb, sc, &camera)
	if err != nil {
		s.logger.Warnf("frame %d of %s abandoned: %v", frame, preset.Info.ID, err)
		return c.JSON(http.StatusServiceUnavailable, errorResponse(err))
	}

	if req.Bloom {
		renderer.ApplyBloom(fb, req.BloomThreshold, req.BloomIntensity)
	}

	var img *image.RGBA
	if req.HUD {
		img = output.Annotate(fb, output.HUDLines(preset.Info.ID, frame, stats))
	} else {
		img = fb.ToImage()
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse(err))
	}

	frameID := uuid.NewString()
	header := c.Response().Header()
	header.Set("X-Frame-ID", frameID)
	header.Set("X-Frame-Number", strconv.Itoa(frame))
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	header.Set("X-Primary-Hits", strconv.Itoa(stats.PrimaryHits))
	header.Set("Cache-Control", "no-store")

	s.logger.Debugf("frame %s (%s #%d): %s", frameID, preset.Info.ID, frame, stats)
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// frameSize parses the width/height pair shared by frame and inspect queries
func frameSize(values url.Values) (int, int, error) {
	width, err := parseIntParam(values, "width", 400, minFrameSize, maxFrameSize)
	if err != nil {
		return 0, 0, err
	}
	height, err := parseIntParam(values, "height", 300, minFrameSize, maxFrameSize)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
