package simulate

import (
	"math"
	"time"

	"github.com/alurubalakarthikeya/Zephra/internal/aqi"
	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

// Offset bases decorrelate the per-hour series from each other while
// staying deterministic. These values are part of the compatibility
// surface: changing one changes every downstream draw for that series.
const (
	offsetAir       = 0
	offsetWeather   = 100
	offsetSatellite = 200
	offsetForecast  = 500
)

const (
	hoursPerDay  = 24
	forecastDays = 7

	minAQI = 5
	maxAQI = 500
)

// Generator produces internally consistent 24-hour air-quality,
// weather, satellite and health series plus a 7-day forecast. Every
// value is a pure function of the combined seed and the hour; all
// randomness routes through Rand at fixed integer offsets.
type Generator struct{}

// NewGenerator returns a Generator. It carries no state; the daily
// seed lives in the injected SeedState of the caller.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateDashboard builds the full response for a location. The hour
// window is anchored to the top of now's hour, covering now-23h..now.
func (g *Generator) GenerateDashboard(dateSeed int, location string, now time.Time) *dashboard.DashboardResponse {
	combined := CombinedSeed(dateSeed, location)
	anchor := now.UTC().Truncate(time.Hour)
	dayOfYear := now.UTC().YearDay()

	air := make([]dashboard.HourlyRecord, 0, hoursPerDay)
	weather := make([]dashboard.WeatherPoint, 0, hoursPerDay)
	satellite := make([]dashboard.SatellitePoint, 0, hoursPerDay)
	health := make([]dashboard.HealthPoint, 0, hoursPerDay)

	for i := 0; i < hoursPerDay; i++ {
		ts := anchor.Add(-time.Duration(hoursPerDay-1-i) * time.Hour)
		hourOfDay := ts.Hour()

		rec := g.hourlyAir(combined, i, hourOfDay, ts)
		wp := g.hourlyWeather(combined, i, hourOfDay, dayOfYear, float64(rec.AQI), ts)
		sp := g.hourlySatellite(combined, i, hourOfDay, dayOfYear, float64(rec.AQI), wp.HumidityPct, ts)

		air = append(air, rec)
		weather = append(weather, wp)
		satellite = append(satellite, sp)
		health = append(health, dashboard.HealthFromAQI(ts, float64(rec.AQI)))
	}

	currentAQI := air[len(air)-1].AQI
	forecast := g.Forecast(combined, currentAQI, now)

	return &dashboard.DashboardResponse{
		Location:    location,
		GeneratedAt: now.UTC(),
		Source:      string(dashboard.ModeMock),
		CurrentAQI:  currentAQI,
		Category:    aqi.CategoryFor(float64(currentAQI)),
		AirQuality:  air,
		Weather:     weather,
		Satellite:   satellite,
		Health:      health,
		Forecast:    forecast,
	}
}

// hourlyAir draws the six pollutant concentrations for one hour. Each
// pollutant targets an AQI around 100, converts the target back to a
// concentration through the inverse breakpoint interpolation, then
// applies its diurnal multiplier. The composite AQI is the worst
// pollutant's sub-index, per EPA convention.
func (g *Generator) hourlyAir(combined, i, hourOfDay int, ts time.Time) dashboard.HourlyRecord {
	hourSeed := combined + offsetAir + i

	conc := make(map[aqi.Pollutant]float64, len(aqi.Pollutants))
	for j, p := range aqi.Pollutants {
		r := Rand(SeedAt(hourSeed, j*10))
		target := 80 + r*40
		c := aqi.TableFor(p).Concentration(target) * diurnalFactor(p, hourOfDay)
		if c < 0 {
			c = 0
		}
		conc[p] = c
	}

	// Coarse particulate includes fine particulate mass. The clamp
	// biases the PM10 distribution slightly; that is the intended
	// behavior, kept for output compatibility.
	if conc[aqi.PM10] < conc[aqi.PM25] {
		conc[aqi.PM10] = conc[aqi.PM25]
	}

	// Round to reporting precision before computing sub-indices so the
	// record's composite AQI matches what its own fields reproduce.
	for p, c := range conc {
		if p == aqi.CO {
			conc[p] = round2(c)
		} else {
			conc[p] = round1(c)
		}
	}

	composite := 0
	for _, p := range aqi.Pollutants {
		if sub := aqi.SubIndex(p, conc[p]); sub > composite {
			composite = sub
		}
	}
	if composite < minAQI {
		composite = minAQI
	}
	if composite > maxAQI {
		composite = maxAQI
	}

	return dashboard.HourlyRecord{
		Timestamp: ts,
		AQI:       composite,
		PM25:      conc[aqi.PM25],
		PM10:      conc[aqi.PM10],
		O3:        conc[aqi.O3],
		NO2:       conc[aqi.NO2],
		SO2:       conc[aqi.SO2],
		CO:        conc[aqi.CO],
	}
}

// diurnalFactor models the daily cycle of each pollutant class:
// particulates build up in the morning and evening under a shallow
// boundary layer and thin out midday, NO2 and CO track traffic rush
// hours, ozone is photochemical and peaks midday, SO2 follows
// industrial business hours.
func diurnalFactor(p aqi.Pollutant, hour int) float64 {
	switch p {
	case aqi.PM25, aqi.PM10:
		switch {
		case hour >= 6 && hour <= 9:
			return 1.4
		case hour >= 18 && hour <= 22:
			return 1.3
		case hour >= 10 && hour <= 16:
			return 0.7
		default:
			return 1.1
		}
	case aqi.NO2, aqi.CO:
		switch {
		case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 20):
			return 1.5
		case hour >= 10 && hour <= 16:
			return 0.9
		default:
			return 0.7
		}
	case aqi.O3:
		switch {
		case hour >= 11 && hour <= 16:
			return 1.5
		case (hour >= 8 && hour <= 10) || (hour == 17 || hour == 18):
			return 1.0
		default:
			return 0.6
		}
	case aqi.SO2:
		if hour >= 9 && hour <= 17 {
			return 1.3
		}
		return 0.8
	}
	return 1.0
}

// basePressure is the deterministic part of surface pressure: a slow
// sinusoidal drift over a five-day cycle.
func basePressure(dayOfYear, hourOfDay int) float64 {
	phase := (float64(dayOfYear)*24 + float64(hourOfDay)) / 120
	return 1013 + 7*math.Sin(2*math.Pi*phase)
}

// hourlyWeather derives the six weather fields. Temperature combines a
// seasonal cosine baseline with a diurnal sine peaking mid-afternoon;
// humidity runs inverse to temperature; wind speed follows the local
// pressure gradient; visibility drops with humidity and pollution.
func (g *Generator) hourlyWeather(combined, i, hourOfDay, dayOfYear int, aqiValue float64, ts time.Time) dashboard.WeatherPoint {
	hourSeed := combined + offsetWeather + i

	seasonal := 15 + 15*math.Cos(2*math.Pi*float64(dayOfYear-172)/365)
	temp := seasonal + 6*math.Sin(2*math.Pi*float64(hourOfDay-9)/24) + (Rand(SeedAt(hourSeed, 0))-0.5)*2

	humidity := clampf(82-1.6*temp+(Rand(SeedAt(hourSeed, 1))-0.5)*12, 20, 100)

	pressure := basePressure(dayOfYear, hourOfDay) + (Rand(SeedAt(hourSeed, 2))-0.5)*1.5

	prevHour := hourOfDay - 1
	prevDay := dayOfYear
	if prevHour < 0 {
		prevHour = 23
		prevDay--
	}
	gradient := math.Abs(basePressure(dayOfYear, hourOfDay) - basePressure(prevDay, prevHour))
	wind := clampf(1.5+gradient*6+Rand(SeedAt(hourSeed, 3))*2.5, 0, 30)

	windDir := Rand(SeedAt(hourSeed, 4)) * 360

	visibility := clampf(28-humidity*0.12-aqiValue*0.06+(Rand(SeedAt(hourSeed, 5))-0.5)*2, 1, 30)

	return dashboard.WeatherPoint{
		Timestamp:        ts,
		TemperatureC:     round1(temp),
		HumidityPct:      round1(humidity),
		WindSpeedMS:      round1(wind),
		WindDirectionDeg: round1(windDir),
		PressureHpa:      round1(pressure),
		VisibilityKm:     round1(visibility),
	}
}

// solarElevation is a simplified sine model: zero outside 06-18 local,
// peaking at noon.
func solarElevation(hourOfDay int) float64 {
	if hourOfDay < 6 || hourOfDay > 18 {
		return 0
	}
	return math.Sin(math.Pi * float64(hourOfDay-6) / 12)
}

// hourlySatellite derives aerosol optical depth from pollution plus
// hygroscopic humidity growth plus background dust noise, a cloud cover
// profile that is heaviest early morning and evening scaled by season,
// and UV/solar radiation from the solar elevation attenuated by clouds
// and aerosol.
func (g *Generator) hourlySatellite(combined, i, hourOfDay, dayOfYear int, aqiValue, humidity float64, ts time.Time) dashboard.SatellitePoint {
	hourSeed := combined + offsetSatellite + i

	aod := clampf(0.05+aqiValue/500*0.6+humidity/100*0.15+Rand(SeedAt(hourSeed, 0))*0.1, 0, 2)

	var cloudBase float64
	switch {
	case (hourOfDay >= 5 && hourOfDay <= 8) || (hourOfDay >= 17 && hourOfDay <= 20):
		cloudBase = 55
	case hourOfDay >= 9 && hourOfDay <= 16:
		cloudBase = 30
	default:
		cloudBase = 45
	}
	seasonFactor := 1 + 0.25*math.Cos(2*math.Pi*float64(dayOfYear-355)/365)
	cloud := clampf(cloudBase*seasonFactor+(Rand(SeedAt(hourSeed, 1))-0.5)*20, 0, 100)

	elev := solarElevation(hourOfDay)
	uv := clampf(11*elev*(1-0.6*cloud/100)*(1-0.4*math.Min(aod, 1)), 0, 11)
	solar := clampf(1000*elev*(1-0.7*cloud/100), 0, 1000)

	layer := 600 + 900*elev + Rand(SeedAt(hourSeed, 2))*400

	return dashboard.SatellitePoint{
		Timestamp:           ts,
		AerosolOpticalDepth: round2(aod),
		CloudCoverPct:       round1(cloud),
		UVIndex:             round1(uv),
		SolarRadiationWm2:   round1(solar),
		AerosolLayerM:       round1(layer),
	}
}

// Forecast projects forecastDays future days from the current AQI with
// growing uncertainty and decaying confidence. Purely a per-day
// function of (combined seed, day index, current AQI).
func (g *Generator) Forecast(combined, currentAQI int, now time.Time) []dashboard.ForecastRecord {
	out := make([]dashboard.ForecastRecord, 0, forecastDays)
	for i := 0; i < forecastDays; i++ {
		base := combined + offsetForecast
		trend := 0.9 + (Rand(SeedAt(base, i*3))-0.5)*0.3
		variation := 0.8 + Rand(SeedAt(base, i*3+1))*0.4
		uncertainty := 1.0 + float64(i)*0.15

		predicted := int(math.Round(float64(currentAQI) * trend * variation * uncertainty))
		if predicted < 10 {
			predicted = 10
		}
		if predicted > 300 {
			predicted = 300
		}

		confidence := int(math.Round(95 - float64(i)*8 + (Rand(SeedAt(base, i*3+2))-0.5)*10))
		if confidence < 45 {
			confidence = 45
		}
		if confidence > 100 {
			confidence = 100
		}

		out = append(out, dashboard.ForecastRecord{
			DayLabel:      now.UTC().AddDate(0, 0, i+1).Format("Mon"),
			PredictedAQI:  predicted,
			ConfidencePct: confidence,
		})
	}
	return out
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
