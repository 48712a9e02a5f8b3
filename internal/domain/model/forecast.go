package model

// ForecastRow is one melted forecast value: a published exceedance level
// for a publication date.
type ForecastRow struct {
	PublicationDate string  `json:"publicationDate"`
	Exceedance      string  `json:"exceedance"`
	Value           float64 `json:"value"`
}

// ForecastTable is the long-form table of a station's seasonal forecasts
type ForecastTable struct {
	StationTriplet string        `json:"stationTriplet"`
	ElementCode    string        `json:"elementCode"`
	UnitCode       string        `json:"unitCode"`
	PeriodBegin    string        `json:"periodBegin"`
	PeriodEnd      string        `json:"periodEnd"`
	Rows           []ForecastRow `json:"rows"`
}

// IsEmpty reports whether the table holds no forecast rows
func (t *ForecastTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
