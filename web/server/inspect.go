package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/geometry"
	"github.com/df07/go-diorama-raytracer/pkg/material"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	U            float32                `json:"u"`
	V            float32                `json:"v"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

// extractMaterialInfo classifies a material and lists its parameters
func extractMaterialInfo(m *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":        fmt.Sprintf("#%06x", m.Diffuse.Hex()),
		"specular":     m.Specular,
		"albedo":       m.Albedo,
		"reflectivity": m.Reflectivity,
		"transparency": m.Transparency,
		"ior":          m.IOR,
		"castsShadows": m.CastsShadows,
		"albedoMap":    m.AlbedoMap != nil,
		"normalMap":    m.NormalMap != nil,
	}

	switch {
	case !m.CastsShadows:
		return "emissive", properties
	case m.Transparency > 0:
		return "glass", properties
	case m.Reflectivity > 0:
		return "mirror", properties
	case m.AlbedoMap != nil:
		return "textured", properties
	default:
		return "phong", properties
	}
}

// extractGeometryInfo names a primitive and lists its shape parameters
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := p.(type) {
	case *geometry.Cube:
		properties["min"] = [3]float32(g.Min)
		properties["max"] = [3]float32(g.Max)
		return "cube", properties

	case *geometry.Wall:
		properties["min"] = [3]float32(g.Min)
		properties["max"] = [3]float32(g.Max)
		properties["tiling"] = [2]float32{g.TileU, g.TileV}
		return "wall", properties

	case *geometry.Stair:
		properties["lower"] = map[string]interface{}{"min": [3]float32(g.Lower.Min), "max": [3]float32(g.Lower.Max)}
		properties["upper"] = map[string]interface{}{"min": [3]float32(g.Upper.Min), "max": [3]float32(g.Upper.Max)}
		return "stair", properties

	case *geometry.Sphere:
		properties["center"] = [3]float32(g.Center)
		properties["radius"] = g.Radius
		return "sphere", properties

	case *geometry.Ring:
		properties["center"] = [3]float32(g.Center)
		properties["normal"] = [3]float32(g.Normal)
		properties["innerRadius"] = g.InnerRadius
		properties["outerRadius"] = g.OuterRadius
		return "ring", properties

	default:
		bounds := p.BoundingBox()
		properties["min"] = [3]float32(bounds.Min)
		properties["max"] = [3]float32(bounds.Max)
		return "unknown", properties
	}
}

// inspectPixel describes what the primary ray hits
func inspectPixel(sc *scene.Scene, ray core.Ray) InspectResponse {
	hit, prim := sc.Pick(ray.Origin, ray.Direction)
	if !hit.IsIntersecting {
		return InspectResponse{Hit: false}
	}

	resp := InspectResponse{
		Hit:      true,
		Point:    [3]float32(hit.Point),
		Normal:   [3]float32(hit.Normal),
		Distance: hit.Distance,
		U:        hit.U,
		V:        hit.V,
	}
	resp.MaterialType, resp.Material = extractMaterialInfo(hit.Material)
	resp.GeometryType, resp.Geometry = extractGeometryInfo(prim)
	return resp
}

// handleInspect reports the primitive under a pixel of the current view
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	width, height, err := frameSize(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err))
	}

	x, err := parseIntParam(values, "x", -1, 0, width-1)
	if err != nil || x < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse(errors.New("pixel x out of bounds or missing")))
	}
	y, err := parseIntParam(values, "y", -1, 0, height-1)
	if err != nil || y < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse(errors.New("pixel y out of bounds or missing")))
	}

	s.mu.Lock()
	preset, camera, frame := s.preset, *s.camera, s.frame
	s.mu.Unlock()

	sc := preset.Build(scene.BuildContext{Textures: s.textures, Frame: frame})
	ray := camera.Snapshot(width, height).Ray(x, y)
	return c.JSON(http.StatusOK, inspectPixel(sc, ray))
}
