package external

// StationDTO represents a station returned by the AWDB stations endpoint
type StationDTO struct {
	StationTriplet    string                `json:"stationTriplet"`
	StationID         string                `json:"stationId"`
	StateCode         string                `json:"stateCode"`
	NetworkCode       string                `json:"networkCode"`
	Name              string                `json:"name"`
	CountyName        string                `json:"countyName"`
	HUC               string                `json:"huc"`
	Elevation         float64               `json:"elevation"`
	Latitude          float64               `json:"latitude"`
	Longitude         float64               `json:"longitude"`
	DataTimeZone      float64               `json:"dataTimeZone"`
	ShefID            string                `json:"shefId"`
	BeginDate         string                `json:"beginDate"`
	EndDate           string                `json:"endDate"`
	StationElements   []StationElementDTO   `json:"stationElements,omitempty"`
	ForecastPoint     *ForecastPointDTO     `json:"forecastPoint,omitempty"`
	ReservoirMetadata *ReservoirMetadataDTO `json:"reservoirMetadata,omitempty"`
}

// StationElementDTO describes one element a station measures
type StationElementDTO struct {
	ElementCode      string  `json:"elementCode"`
	Ordinal          int     `json:"ordinal"`
	HeightDepth      float64 `json:"heightDepth"`
	DurationName     string  `json:"durationName"`
	DataPrecision    int     `json:"dataPrecision"`
	StoredUnitCode   string  `json:"storedUnitCode"`
	OriginalUnitCode string  `json:"originalUnitCode"`
	BeginDate        string  `json:"beginDate"`
	EndDate          string  `json:"endDate"`
}

// ForecastPointDTO describes forecast point metadata attached to a station
type ForecastPointDTO struct {
	Name            string  `json:"name"`
	ForecastPeriod  string  `json:"forecastPeriod"`
	ExceedenceProbs []int   `json:"exceedenceProbabilities"`
	WilsonFlag      bool    `json:"wilsonFlag"`
	DrainageArea    float64 `json:"drainageArea"`
}

// ReservoirMetadataDTO describes reservoir metadata attached to a station
type ReservoirMetadataDTO struct {
	Capacity            float64 `json:"capacity"`
	ElevationAtCapacity float64 `json:"elevationAtCapacity"`
	UsableCapacity      float64 `json:"usableCapacity"`
}

// StationDataDTO is one entry of the AWDB data endpoint response
type StationDataDTO struct {
	StationTriplet string           `json:"stationTriplet"`
	Data           []ElementDataDTO `json:"data"`
}

// ElementDataDTO holds the values of one element for a station
type ElementDataDTO struct {
	StationElement StationElementDTO `json:"stationElement"`
	Values         []DataValueDTO    `json:"values"`
}

// DataValueDTO is a single observation. Daily payloads carry Date;
// monthly payloads carry Year and Month instead.
type DataValueDTO struct {
	Date  string   `json:"date,omitempty"`
	Year  int      `json:"year,omitempty"`
	Month int      `json:"month,omitempty"`
	Value *float64 `json:"value"`
}

// StationForecastsDTO is one entry of the AWDB forecasts endpoint response
type StationForecastsDTO struct {
	StationTriplet string        `json:"stationTriplet"`
	Data           []ForecastDTO `json:"data"`
}

// ForecastDTO is one published forecast. ForecastValues maps exceedance
// probability keys (e.g. "10", "50", "90") to forecast values; non-numeric
// keys may be present and are not exceedance levels.
type ForecastDTO struct {
	ElementCode     string             `json:"elementCode"`
	ForecastPeriod  []string           `json:"forecastPeriod"`
	PublicationDate string             `json:"publicationDate"`
	UnitCode        string             `json:"unitCode"`
	ForecastValues  map[string]float64 `json:"forecastValues"`
}

// APIErrorResponse represents an error payload from the AWDB API
type APIErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}
