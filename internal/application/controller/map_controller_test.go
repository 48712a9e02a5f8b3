package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"basinmap/internal/application/views"

	"github.com/labstack/echo/v4"
)

func TestRenderBasinMap(t *testing.T) {
	if err := views.LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v", err)
	}

	e := echo.New()
	controller := NewMapController(e.Group(""), &fakeBasinUseCase{})
	controller.InitMapRoutes()

	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentType), "text/html") {
		t.Errorf("content type = %q; want text/html", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.Contains(rec.Body.String(), "leaflet") {
		t.Errorf("body should contain the map page")
	}
}

func TestGetBasinBoundary(t *testing.T) {
	e := echo.New()
	controller := NewMapController(e.Group(""), &fakeBasinUseCase{})
	controller.InitMapRoutes()

	req := httptest.NewRequest(http.MethodGet, "/basin/boundary", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentType), "application/json") {
		t.Errorf("content type = %q; want application/json", rec.Header().Get(echo.HeaderContentType))
	}
}
