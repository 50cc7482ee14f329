package dashboard

import (
	"time"

	"github.com/alurubalakarthikeya/Zephra/internal/aqi"
)

// HourlyRecord is one synthetic or observed air-quality observation.
type HourlyRecord struct {
	Timestamp time.Time `json:"timestamp"` // always UTC
	AQI       int       `json:"aqi"`
	PM25      float64   `json:"pm25"` // µg/m³
	PM10      float64   `json:"pm10"` // µg/m³
	O3        float64   `json:"o3"`   // ppb
	NO2       float64   `json:"no2"`  // ppb
	SO2       float64   `json:"so2"`  // ppb
	CO        float64   `json:"co"`   // ppm
}

// WeatherPoint is one hourly weather observation.
type WeatherPoint struct {
	Timestamp        time.Time `json:"timestamp"`
	TemperatureC     float64   `json:"temperatureC"`
	HumidityPct      float64   `json:"humidityPercent"`
	WindSpeedMS      float64   `json:"windSpeed"`
	WindDirectionDeg float64   `json:"windDirection"`
	PressureHpa      float64   `json:"pressureHpa"`
	VisibilityKm     float64   `json:"visibilityKm"`
}

// SatellitePoint carries satellite-proxy fields for one hour.
type SatellitePoint struct {
	Timestamp           time.Time `json:"timestamp"`
	AerosolOpticalDepth float64   `json:"aerosolOpticalDepth"`
	CloudCoverPct       float64   `json:"cloudCoverPercent"`
	UVIndex             float64   `json:"uvIndex"`
	SolarRadiationWm2   float64   `json:"solarRadiationWm2"`
	AerosolLayerM       float64   `json:"aerosolLayerHeightM"`
}

// HealthPoint expresses the health risk derived from one hour's AQI.
// Scores are 0-10; risks grow with AQI, the overall score shrinks.
type HealthPoint struct {
	Timestamp          time.Time `json:"timestamp"`
	OverallScore       float64   `json:"overallHealth"`
	RespiratoryRisk    float64   `json:"respiratoryRisk"`
	CardiovascularRisk float64   `json:"cardiovascularRisk"`
	Level              string    `json:"riskLevel"`
	Recommendation     string    `json:"recommendation"`
}

// ForecastRecord is a one-day AQI projection with its confidence.
type ForecastRecord struct {
	DayLabel      string `json:"day"`
	PredictedAQI  int    `json:"predictedAqi"`
	ConfidencePct int    `json:"confidencePercent"`
}

// DashboardResponse bundles every series the dashboard displays plus
// status metadata. It is constructed fresh per request; only the daily
// seed behind it is cached.
type DashboardResponse struct {
	Location    string       `json:"location"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Source      string       `json:"source"` // "mock" or "live"
	RequestID   string       `json:"requestId"`
	CurrentAQI  int          `json:"currentAqi"`
	Category    aqi.Category `json:"category"`

	AirQuality []HourlyRecord   `json:"airQuality"`
	Weather    []WeatherPoint   `json:"weather"`
	Satellite  []SatellitePoint `json:"satellite"`
	Health     []HealthPoint    `json:"health"`
	Forecast   []ForecastRecord `json:"forecast"`
}

// HealthFromAQI derives the three risk scores and the banded advice for
// one hour. Risks are monotonic in AQI by construction.
func HealthFromAQI(ts time.Time, aqiValue float64) HealthPoint {
	cat := aqi.CategoryFor(aqiValue)
	return HealthPoint{
		Timestamp:          ts,
		OverallScore:       clamp10(10 - aqiValue/50*2),
		RespiratoryRisk:    clamp10(aqiValue / 30 * 2),
		CardiovascularRisk: clamp10(aqiValue / 40 * 2.5),
		Level:              cat.Label,
		Recommendation:     cat.Recommendation,
	}
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
