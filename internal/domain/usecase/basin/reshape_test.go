package basin

import (
	"testing"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/model"
	"basinmap/internal/domain/model/external"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestSeriesFromData(t *testing.T) {
	t.Run("daily values keep their own date", func(t *testing.T) {
		dto := &external.StationDataDTO{
			StationTriplet: "380:CO:SNTL",
			Data: []external.ElementDataDTO{
				{
					StationElement: external.StationElementDTO{ElementCode: "WTEQ", StoredUnitCode: "in"},
					Values: []external.DataValueDTO{
						{Date: "2024-10-01", Value: floatPtr(1.2)},
						{Date: "2024-10-02", Value: nil},
					},
				},
			},
		}

		series := seriesFromData("380:CO:SNTL", "WTEQ", "DAILY", dto)

		if len(series.Points) != 2 {
			t.Fatalf("points = %d; want 2", len(series.Points))
		}
		if series.Points[0].Date != "2024-10-01" {
			t.Errorf("date = %q; want 2024-10-01", series.Points[0].Date)
		}
		if series.Points[1].Value != nil {
			t.Errorf("missing value should stay nil")
		}
		if series.Label != "WTEQ (in)" {
			t.Errorf("label = %q; want %q", series.Label, "WTEQ (in)")
		}
	})

	t.Run("monthly values compose the date from year and month", func(t *testing.T) {
		dto := &external.StationDataDTO{
			Data: []external.ElementDataDTO{
				{
					StationElement: external.StationElementDTO{ElementCode: "RESC", StoredUnitCode: "af"},
					Values: []external.DataValueDTO{
						{Year: 2025, Month: 4, Value: floatPtr(10500)},
					},
				},
			},
		}

		series := seriesFromData("1999:CO:BOR", "RESC", "MONTHLY", dto)

		if series.Points[0].Date != "2025-04-01" {
			t.Errorf("date = %q; want 2025-04-01", series.Points[0].Date)
		}
	})

	t.Run("nil payload yields an empty series", func(t *testing.T) {
		series := seriesFromData("380:CO:SNTL", "WTEQ", "DAILY", nil)

		if !series.IsEmpty() {
			t.Errorf("expected empty series")
		}
		if series.Label != "WTEQ ()" {
			t.Errorf("label = %q; want %q", series.Label, "WTEQ ()")
		}
	})
}

func TestMeltForecasts(t *testing.T) {
	dto := &external.StationForecastsDTO{
		StationTriplet: "09081600:CO:USGS",
		Data: []external.ForecastDTO{
			{
				ElementCode:     "SRVO",
				ForecastPeriod:  []string{"04-01", "07-31"},
				PublicationDate: "2025-03-01",
				UnitCode:        "kaf",
				ForecastValues: map[string]float64{
					"90":              100,
					"10":              300,
					"50":              200,
					"forecastPeriod2": 999,
				},
			},
			{
				ElementCode:     "SRVO",
				ForecastPeriod:  []string{"05-01", "07-31"},
				PublicationDate: "2025-03-01",
				UnitCode:        "kaf",
				ForecastValues:  map[string]float64{"50": 150},
			},
			{
				ElementCode:     "SRVO",
				ForecastPeriod:  []string{"04-01", "07-31"},
				PublicationDate: "2025-02-01",
				UnitCode:        "kaf",
				ForecastValues:  map[string]float64{"50": 180},
			},
		},
	}

	table := meltForecasts("09081600:CO:USGS", "04-01", "07-31", dto)

	// 3 numeric keys from the first forecast + 1 from the third; the
	// mismatched period and non-numeric key are dropped
	if len(table.Rows) != 4 {
		t.Fatalf("rows = %d; want 4", len(table.Rows))
	}

	// rows sorted by publication date, keys sorted numerically within one
	if table.Rows[0].PublicationDate != "2025-02-01" {
		t.Errorf("first row publication = %q; want 2025-02-01", table.Rows[0].PublicationDate)
	}
	if table.Rows[1].Exceedance != "10%" || table.Rows[2].Exceedance != "50%" || table.Rows[3].Exceedance != "90%" {
		t.Errorf("exceedance order = %q %q %q; want 10%% 50%% 90%%",
			table.Rows[1].Exceedance, table.Rows[2].Exceedance, table.Rows[3].Exceedance)
	}
	if table.Rows[3].Value != 100 {
		t.Errorf("90%% value = %v; want 100", table.Rows[3].Value)
	}
	if table.ElementCode != "SRVO" || table.UnitCode != "kaf" {
		t.Errorf("element/unit = %q/%q; want SRVO/kaf", table.ElementCode, table.UnitCode)
	}
}

func TestMeltForecastsNilPayload(t *testing.T) {
	table := meltForecasts("09081600:CO:USGS", "04-01", "07-31", nil)

	if !table.IsEmpty() {
		t.Errorf("expected empty table")
	}
	if table.PeriodBegin != "04-01" || table.PeriodEnd != "07-31" {
		t.Errorf("period = %q..%q; want 04-01..07-31", table.PeriodBegin, table.PeriodEnd)
	}
}

func TestCumulativeSeasonVolume(t *testing.T) {
	series := &model.Series{
		StationTriplet: "09081600:CO:USGS",
		ElementCode:    "SRVO",
		Duration:       "MONTHLY",
		UnitCode:       "af",
		Points: []model.SeriesPoint{
			{Date: "2025-03-01", Value: floatPtr(1000)}, // before season
			{Date: "2025-04-01", Value: floatPtr(2000)},
			{Date: "2025-05-01", Value: nil}, // missing
			{Date: "2025-06-01", Value: floatPtr(4000)},
			{Date: "2025-08-01", Value: floatPtr(9000)}, // after season
		},
	}

	cumulative := cumulativeSeasonVolume(series, "04-01", "07-31")

	if len(cumulative.Points) != 2 {
		t.Fatalf("points = %d; want 2", len(cumulative.Points))
	}
	if *cumulative.Points[0].Value != 2 {
		t.Errorf("first cumulative = %v; want 2", *cumulative.Points[0].Value)
	}
	if *cumulative.Points[1].Value != 6 {
		t.Errorf("second cumulative = %v; want 6", *cumulative.Points[1].Value)
	}
	if cumulative.UnitCode != "kaf" {
		t.Errorf("unit = %q; want kaf", cumulative.UnitCode)
	}
}

func TestReadingRoundTrip(t *testing.T) {
	series := &model.Series{
		StationTriplet: "380:CO:SNTL",
		ElementCode:    "WTEQ",
		Duration:       "DAILY",
		UnitCode:       "in",
		Points: []model.SeriesPoint{
			{Date: "2024-10-01", Value: floatPtr(1.2)},
			{Date: "2024-10-02", Value: nil},
		},
	}

	readings := readingEntities(series)
	if len(readings) != 2 {
		t.Fatalf("readings = %d; want 2", len(readings))
	}

	rebuilt := seriesFromReadings("380:CO:SNTL", readings)
	if rebuilt.ElementCode != "WTEQ" || rebuilt.UnitCode != "in" || rebuilt.Duration != "DAILY" {
		t.Errorf("rebuilt series lost metadata: %+v", rebuilt)
	}
	if len(rebuilt.Points) != 2 || rebuilt.Points[1].Value != nil {
		t.Errorf("rebuilt points = %+v", rebuilt.Points)
	}
}

func TestForecastEntitiesRoundTrip(t *testing.T) {
	table := &model.ForecastTable{
		StationTriplet: "09081600:CO:USGS",
		ElementCode:    "SRVO",
		UnitCode:       "kaf",
		PeriodBegin:    "04-01",
		PeriodEnd:      "07-31",
		Rows: []model.ForecastRow{
			{PublicationDate: "2025-03-01", Exceedance: "50%", Value: 200},
		},
	}

	entities := forecastEntities(table)
	if len(entities) != 1 {
		t.Fatalf("entities = %d; want 1", len(entities))
	}
	if entities[0].PeriodBegin != "04-01" {
		t.Errorf("period begin = %q; want 04-01", entities[0].PeriodBegin)
	}

	rebuilt := tableFromForecastEntities("09081600:CO:USGS", []entity.Forecast{entities[0]})
	if rebuilt.ElementCode != "SRVO" || rebuilt.PeriodEnd != "07-31" {
		t.Errorf("rebuilt table lost metadata: %+v", rebuilt)
	}
	if rebuilt.Rows[0].Exceedance != "50%" {
		t.Errorf("exceedance = %q; want 50%%", rebuilt.Rows[0].Exceedance)
	}
}
