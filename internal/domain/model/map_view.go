package model

import "encoding/json"

// MapMarker is one station marker on the basin map. ChartSpec holds the
// Vega-Lite JSON for the popup chart; HasData is false when every data
// fetch for the station came back empty.
type MapMarker struct {
	StationTriplet string          `json:"stationTriplet"`
	Name           string          `json:"name"`
	NetworkCode    string          `json:"networkCode"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Elevation      float64         `json:"elevation"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
	HasData        bool            `json:"hasData"`
	ChartSpec      json.RawMessage `json:"chartSpec,omitempty"`
}

// MapView is everything the map page needs to render
type MapView struct {
	BasinName string          `json:"basinName"`
	CenterLat float64         `json:"centerLat"`
	CenterLng float64         `json:"centerLng"`
	Zoom      int             `json:"zoom"`
	Boundary  json.RawMessage `json:"boundary,omitempty"`
	Markers   []MapMarker     `json:"markers"`
}

// NetworkIcon returns the Font Awesome icon name for a station network
func NetworkIcon(networkCode string) string {
	switch networkCode {
	case "SNTL":
		return "cloud"
	case "BOR":
		return "droplet"
	case "USGS":
		return "water"
	default:
		return "location-dot"
	}
}

// NetworkColor returns the marker color for a station network
func NetworkColor(networkCode string) string {
	switch networkCode {
	case "SNTL":
		return "blue"
	case "BOR":
		return "green"
	case "USGS":
		return "red"
	default:
		return "black"
	}
}
