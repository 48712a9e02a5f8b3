package api

import (
	"encoding/json"
	"fmt"

	"basinmap/pkg/http"
)

// basinGatewayImpl implements the BasinGateway interface
type basinGatewayImpl struct {
	httpClient *http.Client
}

// NewBasinGateway creates a new instance of BasinGateway. boundaryURL is the
// full URL of the boundary GeoJSON document.
func NewBasinGateway(boundaryURL string, clientOptions http.ClientOptions) BasinGateway {
	// The boundary host serves GeoJSON behind redirects
	clientOptions.FollowRedirect = true
	httpClient := http.NewHttpClient(boundaryURL, clientOptions)

	return &basinGatewayImpl{
		httpClient: httpClient,
	}
}

// GetBoundary returns the basin boundary GeoJSON document
func (g *basinGatewayImpl) GetBoundary() (json.RawMessage, error) {
	var boundary json.RawMessage

	_, _, status, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("").
		WithSuccessResp(&boundary).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch basin boundary (status %d): %w", status, err)
	}

	return boundary, nil
}
