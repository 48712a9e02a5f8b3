package views

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"basinmap/internal/domain/model"
)

func TestRenderMap(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v", err)
	}

	view := &model.MapView{
		BasinName: "Roaring Fork",
		CenterLat: 39.23,
		CenterLng: -106.90,
		Zoom:      10,
		Boundary:  json.RawMessage(`{"type":"FeatureCollection","features":[]}`),
		Markers: []model.MapMarker{
			{
				StationTriplet: "380:CO:SNTL",
				Name:           "Independence Pass",
				NetworkCode:    "SNTL",
				Latitude:       39.07,
				Longitude:      -106.61,
				Icon:           "cloud",
				Color:          "blue",
				HasData:        true,
				ChartSpec:      json.RawMessage(`{"mark":"line"}`),
			},
			{
				StationTriplet: "1999:CO:BOR",
				Name:           "Ruedi Reservoir",
				NetworkCode:    "BOR",
				Icon:           "droplet",
				Color:          "green",
				HasData:        false,
			},
		},
	}

	var buf bytes.Buffer
	if err := RenderMap(&buf, view); err != nil {
		t.Fatalf("RenderMap() = %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"Roaring Fork",
		"Independence Pass",
		"FeatureCollection",
		"leaflet",
		"vega-embed",
		"No data!",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderMapEscapesStationNames(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v", err)
	}

	view := &model.MapView{
		BasinName: "Roaring Fork",
		Markers: []model.MapMarker{
			{
				StationTriplet: "666:CO:SNTL",
				Name:           `<img src=x onerror=alert(1)>`,
			},
		},
	}

	var buf bytes.Buffer
	if err := RenderMap(&buf, view); err != nil {
		t.Fatalf("RenderMap() = %v", err)
	}

	html := buf.String()
	if strings.Contains(html, "<img") {
		t.Errorf("station name markup must not reach the page unescaped")
	}
	// popup titles are text nodes, so names from the upstream API are
	// never parsed as HTML
	if !strings.Contains(html, "title.textContent = marker.name") {
		t.Errorf("popup title should be assigned via textContent")
	}
}

func TestRenderMapBeforeLoad(t *testing.T) {
	saved := mapTmpl
	mapTmpl = nil
	defer func() { mapTmpl = saved }()

	var buf bytes.Buffer
	if err := RenderMap(&buf, &model.MapView{}); err == nil {
		t.Fatalf("expected error when templates are not loaded")
	}
}

func TestLoadTemplatesFromMissingDir(t *testing.T) {
	saved := mapTmpl
	defer func() { mapTmpl = saved }()

	if err := loadTemplatesFromFS(fstest.MapFS{}, "templates"); err == nil {
		t.Fatalf("expected error for a fs without templates")
	}
}
