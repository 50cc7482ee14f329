package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/alurubalakarthikeya/Zephra/internal/aqi"
	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

const (
	openMeteoAirURL     = "https://air-quality-api.open-meteo.com/v1/air-quality"
	openMeteoWeatherURL = "https://api.open-meteo.com/v1/forecast"
)

// Conversion from the µg/m³ the live feed reports to the ppb/ppm units
// the EPA breakpoint tables use, at 25°C and 1 atm.
const (
	o3UgPerPpb  = 1.96
	no2UgPerPpb = 1.88
	so2UgPerPpb = 2.62
	coUgPerPpm  = 1145.0
)

// OpenMeteoProvider implements the dashboard.Provider interface against
// the Open-Meteo air-quality and forecast APIs. Location names are
// resolved to coordinates once via geocoding and cached.
type OpenMeteoProvider struct {
	name       string
	airURL     string
	weatherURL string
	rc         *resilientClient
	now        func() time.Time

	geocode func(name string) (lat, lon float64, err error)

	mu     sync.Mutex
	coords map[string][2]float64
}

// NewOpenMeteoProvider builds the live provider. The geocoder package
// key must be configured by the caller before the first fetch.
func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:       "openmeteo",
		airURL:     openMeteoAirURL,
		weatherURL: openMeteoWeatherURL,
		rc:         newResilientClient(client, "openmeteo"),
		now:        time.Now,
		geocode:    geocodeCity,
		coords:     make(map[string][2]float64),
	}
}

func geocodeCity(name string) (float64, float64, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", name, err)
	}
	return loc.Latitude, loc.Longitude, nil
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) lookupCoords(location string) (float64, float64, error) {
	p.mu.Lock()
	c, ok := p.coords[location]
	p.mu.Unlock()
	if ok {
		return c[0], c[1], nil
	}

	lat, lon, err := p.geocode(location)
	if err != nil {
		return 0, 0, err
	}

	p.mu.Lock()
	p.coords[location] = [2]float64{lat, lon}
	p.mu.Unlock()
	return lat, lon, nil
}

type hourlyAirPayload struct {
	Hourly struct {
		Time            []string  `json:"time"`
		PM25            []float64 `json:"pm2_5"`
		PM10            []float64 `json:"pm10"`
		Ozone           []float64 `json:"ozone"`
		NitrogenDioxide []float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  []float64 `json:"sulphur_dioxide"`
		CarbonMonoxide  []float64 `json:"carbon_monoxide"`
		UVIndex         []float64 `json:"uv_index"`
		AerosolOptDepth []float64 `json:"aerosol_optical_depth"`
	} `json:"hourly"`
}

type hourlyWeatherPayload struct {
	Hourly struct {
		Time             []string  `json:"time"`
		Temperature      []float64 `json:"temperature_2m"`
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
		SurfacePressure  []float64 `json:"surface_pressure"`
		WindSpeed        []float64 `json:"wind_speed_10m"`
		WindDirection    []float64 `json:"wind_direction_10m"`
		Visibility       []float64 `json:"visibility"`
		CloudCover       []float64 `json:"cloud_cover"`
		ShortwaveRad     []float64 `json:"shortwave_radiation"`
	} `json:"hourly"`
}

// GetDashboardData fetches pollutant and weather series from Open-Meteo
// and normalizes them into a DashboardResponse. AQI and health fields
// are computed locally through the same breakpoint tables the mock
// provider uses, so both modes agree on semantics.
func (p *OpenMeteoProvider) GetDashboardData(ctx context.Context, location string) (*dashboard.DashboardResponse, error) {
	lat, lon, err := p.lookupCoords(location)
	if err != nil {
		return nil, err
	}

	var air hourlyAirPayload
	if err := p.rc.getJSON(ctx, p.airRequestURL(lat, lon), &air); err != nil {
		return nil, fmt.Errorf("air quality fetch: %w", err)
	}

	var wx hourlyWeatherPayload
	if err := p.rc.getJSON(ctx, p.weatherRequestURL(lat, lon), &wx); err != nil {
		return nil, fmt.Errorf("weather fetch: %w", err)
	}

	now := p.now().UTC().Truncate(time.Hour)

	airIdx, err := findHour(air.Hourly.Time, now)
	if err != nil {
		return nil, fmt.Errorf("air quality payload: %w", err)
	}
	if airIdx < 23 {
		return nil, fmt.Errorf("air quality payload: not enough history before %s", now.Format(time.RFC3339))
	}
	wxIdx, err := findHour(wx.Hourly.Time, now)
	if err != nil {
		return nil, fmt.Errorf("weather payload: %w", err)
	}
	if wxIdx < 23 {
		return nil, fmt.Errorf("weather payload: not enough history before %s", now.Format(time.RFC3339))
	}

	records := make([]dashboard.HourlyRecord, 0, 24)
	weather := make([]dashboard.WeatherPoint, 0, 24)
	satellite := make([]dashboard.SatellitePoint, 0, 24)
	health := make([]dashboard.HealthPoint, 0, 24)

	for i := 0; i < 24; i++ {
		ts := now.Add(-time.Duration(23-i) * time.Hour)
		ai := airIdx - (23 - i)
		wi := wxIdx - (23 - i)

		rec := dashboard.HourlyRecord{
			Timestamp: ts,
			PM25:      at(air.Hourly.PM25, ai),
			PM10:      at(air.Hourly.PM10, ai),
			O3:        at(air.Hourly.Ozone, ai) / o3UgPerPpb,
			NO2:       at(air.Hourly.NitrogenDioxide, ai) / no2UgPerPpb,
			SO2:       at(air.Hourly.SulphurDioxide, ai) / so2UgPerPpb,
			CO:        at(air.Hourly.CarbonMonoxide, ai) / coUgPerPpm,
		}
		rec.AQI = compositeAQI(rec)
		records = append(records, rec)

		weather = append(weather, dashboard.WeatherPoint{
			Timestamp:        ts,
			TemperatureC:     at(wx.Hourly.Temperature, wi),
			HumidityPct:      at(wx.Hourly.RelativeHumidity, wi),
			WindSpeedMS:      at(wx.Hourly.WindSpeed, wi) / 3.6, // km/h -> m/s
			WindDirectionDeg: at(wx.Hourly.WindDirection, wi),
			PressureHpa:      at(wx.Hourly.SurfacePressure, wi),
			VisibilityKm:     at(wx.Hourly.Visibility, wi) / 1000,
		})

		satellite = append(satellite, dashboard.SatellitePoint{
			Timestamp:           ts,
			AerosolOpticalDepth: at(air.Hourly.AerosolOptDepth, ai),
			CloudCoverPct:       at(wx.Hourly.CloudCover, wi),
			UVIndex:             at(air.Hourly.UVIndex, ai),
			SolarRadiationWm2:   at(wx.Hourly.ShortwaveRad, wi),
			// Aerosol layer height is not in the live feed.
		})

		health = append(health, dashboard.HealthFromAQI(ts, float64(rec.AQI)))
	}

	forecast := dailyForecast(air, airIdx, now)
	currentAQI := records[len(records)-1].AQI

	return &dashboard.DashboardResponse{
		Location:    location,
		GeneratedAt: p.now().UTC(),
		Source:      string(dashboard.ModeLive),
		CurrentAQI:  currentAQI,
		Category:    aqi.CategoryFor(float64(currentAQI)),
		AirQuality:  records,
		Weather:     weather,
		Satellite:   satellite,
		Health:      health,
		Forecast:    forecast,
	}, nil
}

func (p *OpenMeteoProvider) airRequestURL(lat, lon float64) string {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", "pm2_5,pm10,ozone,nitrogen_dioxide,sulphur_dioxide,carbon_monoxide,uv_index,aerosol_optical_depth")
	values.Set("past_days", "1")
	values.Set("forecast_days", "7")
	values.Set("timezone", "UTC")
	return fmt.Sprintf("%s?%s", p.airURL, values.Encode())
}

func (p *OpenMeteoProvider) weatherRequestURL(lat, lon float64) string {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("hourly", "temperature_2m,relative_humidity_2m,surface_pressure,wind_speed_10m,wind_direction_10m,visibility,cloud_cover,shortwave_radiation")
	values.Set("past_days", "1")
	values.Set("forecast_days", "1")
	values.Set("timezone", "UTC")
	return fmt.Sprintf("%s?%s", p.weatherURL, values.Encode())
}

// compositeAQI computes the EPA composite: the max of the six
// per-pollutant sub-indices.
func compositeAQI(rec dashboard.HourlyRecord) int {
	subs := []int{
		aqi.SubIndex(aqi.PM25, rec.PM25),
		aqi.SubIndex(aqi.PM10, rec.PM10),
		aqi.SubIndex(aqi.O3, rec.O3),
		aqi.SubIndex(aqi.NO2, rec.NO2),
		aqi.SubIndex(aqi.SO2, rec.SO2),
		aqi.SubIndex(aqi.CO, rec.CO),
	}
	max := 0
	for _, s := range subs {
		if s > max {
			max = s
		}
	}
	return max
}

// dailyForecast reduces the forecast hours beyond now to one record per
// future day, predicting the day's peak AQI. Confidence decays with
// lead time the same way the synthetic forecast does, without jitter.
func dailyForecast(air hourlyAirPayload, nowIdx int, now time.Time) []dashboard.ForecastRecord {
	h := air.Hourly
	out := make([]dashboard.ForecastRecord, 0, 7)

	for day := 0; day < 7; day++ {
		peak := 0
		start := nowIdx + 1 + day*24
		for i := start; i < start+24 && i < len(h.Time); i++ {
			rec := dashboard.HourlyRecord{
				PM25: at(h.PM25, i),
				PM10: at(h.PM10, i),
				O3:   at(h.Ozone, i) / o3UgPerPpb,
				NO2:  at(h.NitrogenDioxide, i) / no2UgPerPpb,
				SO2:  at(h.SulphurDioxide, i) / so2UgPerPpb,
				CO:   at(h.CarbonMonoxide, i) / coUgPerPpm,
			}
			if a := compositeAQI(rec); a > peak {
				peak = a
			}
		}
		if peak == 0 {
			break
		}

		confidence := int(math.Round(95 - float64(day)*8))
		if confidence < 45 {
			confidence = 45
		}

		out = append(out, dashboard.ForecastRecord{
			DayLabel:      now.AddDate(0, 0, day+1).Format("Mon"),
			PredictedAQI:  peak,
			ConfidencePct: confidence,
		})
	}
	return out
}

// findHour locates ts in an Open-Meteo hourly time axis ("2006-01-02T15:04").
func findHour(axis []string, ts time.Time) (int, error) {
	want := ts.Format("2006-01-02T15:04")
	for i, v := range axis {
		if v == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("hour %s not present in time axis", want)
}

// at is a bounds-safe array lookup; missing samples read as zero.
func at(arr []float64, i int) float64 {
	if i < 0 || i >= len(arr) {
		return 0
	}
	return arr[i]
}
