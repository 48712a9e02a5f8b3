package api

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"basinmap/pkg/http"
)

func newTestGateway(handler nethttp.HandlerFunc) (AwdbGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	gateway := NewAwdbGateway(server.URL, http.ClientOptions{})
	return gateway, server
}

func TestFindStations(t *testing.T) {
	var gotPath, gotQuery string
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"stationTriplet": "380:CO:SNTL", "huc": "140100040101"},
			{"stationTriplet": "09081600:CO:USGS", "huc": "140100040202"}
		]`))
	})
	defer server.Close()

	stations, err := gateway.FindStations([]string{"SNTL", "USGS"}, false)
	if err != nil {
		t.Fatalf("FindStations() = %v", err)
	}

	if gotPath != "/stations" {
		t.Errorf("path = %q; want /stations", gotPath)
	}
	if !strings.Contains(gotQuery, "stationTriplets=*:*:SNTL,*:*:USGS") {
		t.Errorf("query = %q; want wildcard triplets", gotQuery)
	}
	if !strings.Contains(gotQuery, "activeOnly=false") {
		t.Errorf("query = %q; want activeOnly=false", gotQuery)
	}
	if len(stations) != 2 {
		t.Fatalf("stations = %d; want 2", len(stations))
	}
	if stations[0].StationTriplet != "380:CO:SNTL" {
		t.Errorf("triplet = %q; want 380:CO:SNTL", stations[0].StationTriplet)
	}
}

func TestFindStationsActiveOnly(t *testing.T) {
	var gotQuery string
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	defer server.Close()

	if _, err := gateway.FindStations([]string{"SNTL"}, true); err != nil {
		t.Fatalf("FindStations() = %v", err)
	}
	if strings.Contains(gotQuery, "activeOnly") {
		t.Errorf("query = %q; activeOnly must be omitted for active searches", gotQuery)
	}
}

func TestGetStationMetadata(t *testing.T) {
	var gotQuery string
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"stationTriplet": "1999:CO:BOR",
			"reservoirMetadata": {"capacity": 102373}
		}]`))
	})
	defer server.Close()

	stations, err := gateway.GetStationMetadata([]string{"1999:CO:BOR"}, StationQuery{Element: "RESC", Duration: "MONTHLY"})
	if err != nil {
		t.Fatalf("GetStationMetadata() = %v", err)
	}

	for _, want := range []string{
		"elements=RESC",
		"durations=MONTHLY",
		"returnStationElements=true",
		"returnForecastPointMetadata=true",
		"returnReservoirMetadata=true",
		"activeOnly=false",
	} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query = %q; missing %q", gotQuery, want)
		}
	}
	if stations[0].ReservoirMetadata == nil || stations[0].ReservoirMetadata.Capacity != 102373 {
		t.Errorf("reservoir metadata not decoded: %+v", stations[0].ReservoirMetadata)
	}
}

func TestGetData(t *testing.T) {
	var gotQuery string
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"stationTriplet": "380:CO:SNTL",
			"data": [{
				"stationElement": {"elementCode": "WTEQ", "storedUnitCode": "in"},
				"values": [{"date": "2024-10-01", "value": 1.2}]
			}]
		}]`))
	})
	defer server.Close()

	data, err := gateway.GetData("380:CO:SNTL", "WTEQ", "DAILY", "2024-10-01", "2025-08-31")
	if err != nil {
		t.Fatalf("GetData() = %v", err)
	}

	if !strings.Contains(gotQuery, "periodRef=START") {
		t.Errorf("query = %q; missing periodRef=START", gotQuery)
	}
	if !strings.Contains(gotQuery, "beginDate=2024-10-01") || !strings.Contains(gotQuery, "endDate=2025-08-31") {
		t.Errorf("query = %q; missing water-year window", gotQuery)
	}
	if data == nil || len(data.Data) != 1 {
		t.Fatalf("data = %+v; want one element payload", data)
	}
	if *data.Data[0].Values[0].Value != 1.2 {
		t.Errorf("value = %v; want 1.2", *data.Data[0].Values[0].Value)
	}
}

func TestGetDataEmptyResponse(t *testing.T) {
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	defer server.Close()

	data, err := gateway.GetData("380:CO:SNTL", "WTEQ", "DAILY", "2024-10-01", "2025-08-31")
	if err != nil {
		t.Fatalf("GetData() = %v", err)
	}
	if data != nil {
		t.Errorf("data = %+v; want nil for empty response", data)
	}
}

func TestGetForecasts(t *testing.T) {
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"stationTriplet": "09081600:CO:USGS",
			"data": [{
				"elementCode": "SRVO",
				"forecastPeriod": ["04-01", "07-31"],
				"publicationDate": "2025-03-01",
				"unitCode": "kaf",
				"forecastValues": {"10": 300, "50": 200, "90": 100}
			}]
		}]`))
	})
	defer server.Close()

	forecasts, err := gateway.GetForecasts("09081600:CO:USGS", "SRVO", "2024-10-01", "2025-08-31")
	if err != nil {
		t.Fatalf("GetForecasts() = %v", err)
	}
	if forecasts == nil || len(forecasts.Data) != 1 {
		t.Fatalf("forecasts = %+v; want one forecast", forecasts)
	}
	if forecasts.Data[0].ForecastValues["50"] != 200 {
		t.Errorf("median = %v; want 200", forecasts.Data[0].ForecastValues["50"])
	}
}

func TestAPIErrorMessagePreferred(t *testing.T) {
	gateway, server := newTestGateway(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "invalid station triplet"}`))
	})
	defer server.Close()

	_, err := gateway.GetData("bogus", "WTEQ", "DAILY", "2024-10-01", "2025-08-31")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "invalid station triplet" {
		t.Errorf("err = %q; want the upstream message", err.Error())
	}
}
