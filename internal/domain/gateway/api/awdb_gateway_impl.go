package api

import (
	"fmt"
	"strings"

	"basinmap/internal/domain/model/external"
	"basinmap/pkg/http"
)

// awdbGatewayImpl implements the AwdbGateway interface
type awdbGatewayImpl struct {
	httpClient *http.Client
}

// NewAwdbGateway creates a new instance of AwdbGateway with HTTP client
func NewAwdbGateway(baseURL string, clientOptions http.ClientOptions) AwdbGateway {
	httpClient := http.NewHttpClient(baseURL, clientOptions)

	return &awdbGatewayImpl{
		httpClient: httpClient,
	}
}

// GetReferenceData returns the raw reference data payload
func (g *awdbGatewayImpl) GetReferenceData() (map[string]any, error) {
	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/reference-data").
		WithSuccessResp(&map[string]any{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := successResp.(*map[string]any)
		return *response, nil
	}

	return nil, apiError(errResp, err)
}

// FindStations searches stations by network wildcard triplets
func (g *awdbGatewayImpl) FindStations(networks []string, activeOnly bool) ([]external.StationDTO, error) {
	triplets := make([]string, len(networks))
	for i, network := range networks {
		triplets[i] = "*:*:" + network
	}

	queryParams := map[string]string{
		"stationTriplets": strings.Join(triplets, ","),
	}
	if !activeOnly {
		queryParams["activeOnly"] = "false"
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/stations").
		WithQueryParams(queryParams).
		WithSuccessResp(&[]external.StationDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := successResp.(*[]external.StationDTO)
		return *response, nil
	}

	return nil, apiError(errResp, err)
}

// GetStationMetadata returns full metadata for the given stations
func (g *awdbGatewayImpl) GetStationMetadata(stationTriplets []string, query StationQuery) ([]external.StationDTO, error) {
	queryParams := map[string]string{
		"stationTriplets":             strings.Join(stationTriplets, ","),
		"returnStationElements":       "true",
		"durations":                   query.Duration,
		"elements":                    query.Element,
		"returnForecastPointMetadata": "true",
		"returnReservoirMetadata":     "true",
		"activeOnly":                  "false",
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/stations").
		WithQueryParams(queryParams).
		WithSuccessResp(&[]external.StationDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := successResp.(*[]external.StationDTO)
		return *response, nil
	}

	return nil, apiError(errResp, err)
}

// GetData returns observations for one station between beginDate and endDate
func (g *awdbGatewayImpl) GetData(stationTriplet string, elements string, duration string, beginDate string, endDate string) (*external.StationDataDTO, error) {
	queryParams := map[string]string{
		"stationTriplets": stationTriplet,
		"elements":        elements,
		"duration":        duration,
		"beginDate":       beginDate,
		"endDate":         endDate,
		"periodRef":       "START",
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/data").
		WithQueryParams(queryParams).
		WithSuccessResp(&[]external.StationDataDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := *successResp.(*[]external.StationDataDTO)
		if len(response) == 0 {
			return nil, nil
		}
		return &response[0], nil
	}

	return nil, apiError(errResp, err)
}

// GetForecasts returns forecasts for one station published between the given dates
func (g *awdbGatewayImpl) GetForecasts(stationTriplet string, elementCodes string, beginPublicationDate string, endPublicationDate string) (*external.StationForecastsDTO, error) {
	queryParams := map[string]string{
		"stationTriplets":      stationTriplet,
		"elementCodes":         elementCodes,
		"beginPublicationDate": beginPublicationDate,
		"endPublicationDate":   endPublicationDate,
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/forecasts").
		WithQueryParams(queryParams).
		WithSuccessResp(&[]external.StationForecastsDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := *successResp.(*[]external.StationForecastsDTO)
		if len(response) == 0 {
			return nil, nil
		}
		return &response[0], nil
	}

	return nil, apiError(errResp, err)
}

// apiError prefers the decoded AWDB error payload over the transport error
func apiError(errResp any, err error) error {
	if errResp != nil {
		if errorResponse, ok := errResp.(*external.APIErrorResponse); ok && errorResponse.Message != "" {
			return fmt.Errorf("%s", errorResponse.Message)
		}
	}
	return err
}
