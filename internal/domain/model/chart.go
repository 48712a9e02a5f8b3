package model

import "encoding/json"

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

const (
	chartWidth  = 350
	chartHeight = 250
)

// DailyLineSpec builds a Vega-Lite line chart for a daily series
func DailyLineSpec(series *Series) json.RawMessage {
	spec := map[string]any{
		"$schema": vegaLiteSchema,
		"width":   chartWidth,
		"height":  chartHeight,
		"data":    map[string]any{"values": seriesValues(series)},
		"mark":    "line",
		"encoding": map[string]any{
			"x": map[string]any{"field": "date", "type": "temporal", "title": "Date"},
			"y": map[string]any{"field": "value", "type": "quantitative", "title": series.Label},
		},
	}
	return mustJSON(spec)
}

// MonthlyBarSpec builds a Vega-Lite bar chart for a monthly series
func MonthlyBarSpec(series *Series) json.RawMessage {
	spec := map[string]any{
		"$schema": vegaLiteSchema,
		"width":   chartWidth,
		"height":  chartHeight,
		"data":    map[string]any{"values": seriesValues(series)},
		"mark":    "bar",
		"encoding": map[string]any{
			"x": map[string]any{"field": "date", "type": "temporal", "timeUnit": "yearmonth", "title": "Month"},
			"y": map[string]any{"field": "value", "type": "quantitative", "title": series.Label},
		},
	}
	return mustJSON(spec)
}

// ForecastLayerSpec builds a layered Vega-Lite chart for forecast points:
// a scatter of published exceedance forecasts over a line of the observed
// cumulative seasonal volume.
func ForecastLayerSpec(table *ForecastTable, observed *Series) json.RawMessage {
	forecastValues := make([]map[string]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		forecastValues = append(forecastValues, map[string]any{
			"date":       row.PublicationDate,
			"value":      row.Value,
			"exceedance": row.Exceedance,
		})
	}

	scatter := map[string]any{
		"data": map[string]any{"values": forecastValues},
		"mark": map[string]any{"type": "point", "filled": true},
		"encoding": map[string]any{
			"x":     map[string]any{"field": "date", "type": "temporal", "title": "Publication date"},
			"y":     map[string]any{"field": "value", "type": "quantitative", "title": table.ElementCode + " (" + table.UnitCode + ")"},
			"color": map[string]any{"field": "exceedance", "type": "nominal", "title": "Exceedance"},
		},
	}

	line := map[string]any{
		"data": map[string]any{"values": seriesValues(observed)},
		"mark": "line",
		"encoding": map[string]any{
			"x": map[string]any{"field": "date", "type": "temporal"},
			"y": map[string]any{"field": "value", "type": "quantitative", "title": observed.Label},
		},
	}

	spec := map[string]any{
		"$schema": vegaLiteSchema,
		"width":   chartWidth,
		"height":  chartHeight,
		"layer":   []any{scatter, line},
	}
	return mustJSON(spec)
}

// seriesValues converts series points into Vega-Lite data rows,
// skipping dates with no reported value
func seriesValues(series *Series) []map[string]any {
	values := make([]map[string]any, 0, len(series.Points))
	for _, point := range series.Points {
		if point.Value == nil {
			continue
		}
		values = append(values, map[string]any{
			"date":  point.Date,
			"value": *point.Value,
		})
	}
	return values
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// Specs are built from plain maps and numbers, marshaling cannot fail
		panic(err)
	}
	return data
}
