package controller

import (
	"net/http"

	"basinmap/internal/application/views"
	"basinmap/internal/domain/usecase/basin"

	"github.com/labstack/echo/v4"
)

type MapController struct {
	api        *echo.Group
	useCase    basin.UseCase
	middleware []echo.MiddlewareFunc
}

func NewMapController(api *echo.Group, useCase basin.UseCase, middleware ...echo.MiddlewareFunc) *MapController {
	return &MapController{api: api, useCase: useCase, middleware: middleware}
}

// InitMapRoutes initializes map routes
func (controller *MapController) InitMapRoutes() {
	controller.api.GET("/map", controller.RenderBasinMap, controller.middleware...)
	controller.api.GET("/basin/boundary", controller.GetBasinBoundary)
}

// RenderBasinMap godoc
// @Summary Interactive basin map
// @Description Render the interactive basin map with station markers and popup charts
// @Tags map
// @Produce html
// @Success 200 {string} string "HTML map page"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /map [get]
func (controller *MapController) RenderBasinMap(c echo.Context) error {
	view, err := controller.useCase.BuildMap()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return views.RenderMap(c.Response(), view)
}

// GetBasinBoundary godoc
// @Summary Basin boundary
// @Description Retrieve the basin boundary as a GeoJSON document
// @Tags map
// @Produce json
// @Success 200 {object} object "GeoJSON feature collection"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /basin/boundary [get]
func (controller *MapController) GetBasinBoundary(c echo.Context) error {
	boundary, err := controller.useCase.GetBoundary()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSONBlob(http.StatusOK, boundary)
}
