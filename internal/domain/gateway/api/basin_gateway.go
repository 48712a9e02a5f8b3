package api

import "encoding/json"

// BasinGateway fetches basin reference artifacts hosted outside the AWDB API
type BasinGateway interface {
	// GetBoundary returns the basin boundary GeoJSON document
	GetBoundary() (json.RawMessage, error)
}
