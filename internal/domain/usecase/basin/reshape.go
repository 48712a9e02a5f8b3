package basin

import (
	"fmt"
	"sort"

	"basinmap/internal/domain/entity"
	"basinmap/internal/domain/model"
	"basinmap/internal/domain/model/external"
	"basinmap/pkg/util/hydro"
	"basinmap/pkg/util/numberutils"
)

// seriesFromData reshapes the first element payload of an AWDB data response
// into a tabular series. Daily values carry their own date; monthly values
// compose the date from (year, month, 1).
func seriesFromData(triplet string, element string, duration string, dto *external.StationDataDTO) *model.Series {
	series := &model.Series{
		StationTriplet: triplet,
		ElementCode:    element,
		Duration:       duration,
		Label:          model.SeriesLabel(element, ""),
		Points:         []model.SeriesPoint{},
	}

	if dto == nil || len(dto.Data) == 0 {
		return series
	}

	elementData := dto.Data[0]
	series.ElementCode = elementData.StationElement.ElementCode
	series.UnitCode = elementData.StationElement.StoredUnitCode
	series.Label = model.SeriesLabel(series.ElementCode, series.UnitCode)

	for _, value := range elementData.Values {
		date := value.Date
		if date == "" {
			date = fmt.Sprintf("%04d-%02d-01", value.Year, value.Month)
		}
		series.Points = append(series.Points, model.SeriesPoint{
			Date:  date,
			Value: value.Value,
		})
	}

	return series
}

// seriesFromReadings rebuilds a series from stored reading snapshots
func seriesFromReadings(triplet string, readings []entity.Reading) *model.Series {
	series := &model.Series{
		StationTriplet: triplet,
		Points:         []model.SeriesPoint{},
	}

	for _, reading := range readings {
		if series.ElementCode == "" {
			series.ElementCode = reading.ElementCode
			series.Duration = reading.Duration
			series.UnitCode = reading.UnitCode
			series.Label = model.SeriesLabel(reading.ElementCode, reading.UnitCode)
		}
		series.Points = append(series.Points, model.SeriesPoint{
			Date:  reading.Date,
			Value: reading.Value,
		})
	}

	return series
}

// readingEntities converts a series into reading snapshot rows
func readingEntities(series *model.Series) []entity.Reading {
	readings := make([]entity.Reading, 0, len(series.Points))
	for _, point := range series.Points {
		readings = append(readings, entity.Reading{
			StationTriplet: series.StationTriplet,
			ElementCode:    series.ElementCode,
			Duration:       series.Duration,
			Date:           point.Date,
			UnitCode:       series.UnitCode,
			Value:          point.Value,
		})
	}
	return readings
}

// meltForecasts turns wide forecast payloads into long rows. Only forecasts
// whose period matches (periodBegin, periodEnd) are kept, and only numeric
// exceedance keys are melted; each key becomes an "N%" label.
func meltForecasts(triplet string, periodBegin string, periodEnd string, dto *external.StationForecastsDTO) *model.ForecastTable {
	table := &model.ForecastTable{
		StationTriplet: triplet,
		PeriodBegin:    periodBegin,
		PeriodEnd:      periodEnd,
		Rows:           []model.ForecastRow{},
	}

	if dto == nil {
		return table
	}

	for _, forecast := range dto.Data {
		if len(forecast.ForecastPeriod) < 2 {
			continue
		}
		if forecast.ForecastPeriod[0] != periodBegin || forecast.ForecastPeriod[1] != periodEnd {
			continue
		}

		table.ElementCode = forecast.ElementCode
		table.UnitCode = forecast.UnitCode

		keys := make([]string, 0, len(forecast.ForecastValues))
		for key := range forecast.ForecastValues {
			if numberutils.IsDigits(key) {
				keys = append(keys, key)
			}
		}
		sort.Slice(keys, func(i, j int) bool {
			return numberutils.ToInt(keys[i]) < numberutils.ToInt(keys[j])
		})

		for _, key := range keys {
			table.Rows = append(table.Rows, model.ForecastRow{
				PublicationDate: forecast.PublicationDate,
				Exceedance:      key + "%",
				Value:           forecast.ForecastValues[key],
			})
		}
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].PublicationDate < table.Rows[j].PublicationDate
	})

	return table
}

// tableFromForecastEntities rebuilds a forecast table from stored snapshots
func tableFromForecastEntities(triplet string, forecasts []entity.Forecast) *model.ForecastTable {
	table := &model.ForecastTable{
		StationTriplet: triplet,
		Rows:           []model.ForecastRow{},
	}

	for _, forecast := range forecasts {
		if table.ElementCode == "" {
			table.ElementCode = forecast.ElementCode
			table.UnitCode = forecast.UnitCode
			table.PeriodBegin = forecast.PeriodBegin
			table.PeriodEnd = forecast.PeriodEnd
		}
		table.Rows = append(table.Rows, model.ForecastRow{
			PublicationDate: forecast.PublicationDate,
			Exceedance:      forecast.Exceedance,
			Value:           forecast.Value,
		})
	}

	return table
}

// forecastEntities converts a forecast table into snapshot rows
func forecastEntities(table *model.ForecastTable) []entity.Forecast {
	forecasts := make([]entity.Forecast, 0, len(table.Rows))
	for _, row := range table.Rows {
		forecasts = append(forecasts, entity.Forecast{
			StationTriplet:  table.StationTriplet,
			ElementCode:     table.ElementCode,
			PublicationDate: row.PublicationDate,
			Exceedance:      row.Exceedance,
			Value:           row.Value,
			UnitCode:        table.UnitCode,
			PeriodBegin:     table.PeriodBegin,
			PeriodEnd:       table.PeriodEnd,
		})
	}
	return forecasts
}

// cumulativeSeasonVolume accumulates the observed in-season volumes of a
// monthly series, scaled to thousands (kaf), for the forecast overlay chart
func cumulativeSeasonVolume(series *model.Series, periodBegin string, periodEnd string) *model.Series {
	cumulative := &model.Series{
		StationTriplet: series.StationTriplet,
		ElementCode:    series.ElementCode,
		Duration:       series.Duration,
		UnitCode:       "kaf",
		Label:          "Cumulative volume (kaf)",
		Points:         []model.SeriesPoint{},
	}

	var sum float64
	for _, point := range series.Points {
		if point.Value == nil {
			continue
		}
		date, err := hydro.ParseDate(point.Date)
		if err != nil || !hydro.InSeason(date, periodBegin, periodEnd) {
			continue
		}
		sum += *point.Value / 1000
		value := sum
		cumulative.Points = append(cumulative.Points, model.SeriesPoint{
			Date:  point.Date,
			Value: &value,
		})
	}

	return cumulative
}
