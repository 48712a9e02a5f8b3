package controller

import (
	"net/http"

	"basinmap/internal/domain/usecase/basin"
	"basinmap/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type StationController struct {
	api     *echo.Group
	useCase basin.UseCase
}

func NewStationController(api *echo.Group, useCase basin.UseCase) *StationController {
	return &StationController{api: api, useCase: useCase}
}

// InitStationRoutes initializes station routes
func (controller *StationController) InitStationRoutes() {
	controller.api.GET("/stations", controller.ListStations)
	controller.api.GET("/stations/:triplet/series", controller.GetStationSeries)
	controller.api.GET("/stations/:triplet/forecasts", controller.GetStationForecasts)
	controller.api.POST("/stations/refresh", controller.RefreshAllStations)
}

// ListStations godoc
// @Summary List monitored stations
// @Description Retrieve monitored station snapshots with pagination and filtering options
// @Tags stations
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Param network query string false "Network code to filter by (SNTL, USGS, BOR)"
// @Param huc query string false "HUC prefix to filter by"
// @Success 200 {object} model.Page[entity.Station] "Paginated list of stations"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations [get]
func (controller *StationController) ListStations(c echo.Context) error {
	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), 10)
	var network string = c.QueryParam("network")
	var huc string = c.QueryParam("huc")

	stations, err := controller.useCase.ListStations(page, size, network, huc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stations)
}

// GetStationSeries godoc
// @Summary Get station observations
// @Description Retrieve the current water-year observation table for a station
// @Tags stations
// @Accept json
// @Produce json
// @Param triplet path string true "Station triplet (id:state:network)"
// @Success 200 {object} model.Series "Observation series"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations/{triplet}/series [get]
func (controller *StationController) GetStationSeries(c echo.Context) error {
	triplet := c.Param("triplet")

	series, err := controller.useCase.GetStationSeries(triplet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, series)
}

// GetStationForecasts godoc
// @Summary Get station forecasts
// @Description Retrieve the melted seasonal forecast table for a station
// @Tags stations
// @Accept json
// @Produce json
// @Param triplet path string true "Station triplet (id:state:network)"
// @Success 200 {object} model.ForecastTable "Forecast table"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations/{triplet}/forecasts [get]
func (controller *StationController) GetStationForecasts(c echo.Context) error {
	triplet := c.Param("triplet")

	forecasts, err := controller.useCase.GetStationForecasts(triplet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, forecasts)
}

// RefreshAllStations godoc
// @Summary Schedule a refresh of all stations
// @Description Enqueue a snapshot refresh for every monitored station
// @Tags stations
// @Accept json
// @Produce json
// @Success 202 {object} map[string]string "Station refresh scheduled successfully"
// @Router /stations/refresh [post]
func (controller *StationController) RefreshAllStations(c echo.Context) error {
	// Execute in a separate goroutine to avoid blocking the request
	go func() {
		controller.useCase.EnqueueRefreshAll()
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"message": "Station refresh scheduled successfully"})
}
