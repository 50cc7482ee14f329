package aqi

import (
	"fmt"
	"math"
)

// Pollutant identifies one of the six criteria pollutants tracked by the EPA AQI.
type Pollutant string

const (
	PM25 Pollutant = "pm25"
	PM10 Pollutant = "pm10"
	O3   Pollutant = "o3"
	NO2  Pollutant = "no2"
	SO2  Pollutant = "so2"
	CO   Pollutant = "co"
)

// Pollutants lists all tracked pollutants in a fixed order.
var Pollutants = []Pollutant{PM25, PM10, O3, NO2, SO2, CO}

// Breakpoint maps one concentration range onto one AQI range.
type Breakpoint struct {
	ConcLow  float64
	ConcHigh float64
	AQILow   float64
	AQIHigh  float64
}

// Table is an ordered set of breakpoints for a single pollutant,
// ascending in both concentration and AQI.
type Table []Breakpoint

// NewTable validates the breakpoint invariants and panics on violation.
// A malformed table is a programming error, not a runtime fault.
func NewTable(bps ...Breakpoint) Table {
	if len(bps) == 0 {
		panic("aqi: empty breakpoint table")
	}
	for i, bp := range bps {
		if bp.ConcHigh <= bp.ConcLow {
			panic(fmt.Sprintf("aqi: zero-width concentration span at index %d", i))
		}
		if bp.AQIHigh <= bp.AQILow {
			panic(fmt.Sprintf("aqi: zero-width AQI span at index %d", i))
		}
		if i > 0 {
			prev := bps[i-1]
			if bp.ConcLow < prev.ConcHigh {
				panic(fmt.Sprintf("aqi: overlapping concentration ranges at index %d", i))
			}
			if bp.AQILow != prev.AQIHigh+1 {
				panic(fmt.Sprintf("aqi: non-contiguous AQI ranges at index %d", i))
			}
		}
	}
	return Table(bps)
}

// AQI converts a concentration to its AQI sub-index via piecewise-linear
// interpolation. Values below the table floor clamp to the lowest AQI;
// values above the ceiling saturate at the top AQI band value.
func (t Table) AQI(conc float64) float64 {
	first := t[0]
	if conc <= first.ConcLow {
		return first.AQILow
	}
	for _, bp := range t {
		if conc <= bp.ConcHigh {
			// EPA tables leave small reporting gaps between bands
			// (e.g. 12.0 -> 12.1); snap into the band that covers
			// the value from above.
			if conc < bp.ConcLow {
				conc = bp.ConcLow
			}
			return bp.AQILow + (conc-bp.ConcLow)/(bp.ConcHigh-bp.ConcLow)*(bp.AQIHigh-bp.AQILow)
		}
	}
	return t[len(t)-1].AQIHigh
}

// Concentration performs the inverse interpolation: given a target AQI,
// return the concentration that would produce it. Out-of-range targets
// clamp to the nearest table boundary.
func (t Table) Concentration(aqi float64) float64 {
	first := t[0]
	if aqi <= first.AQILow {
		return first.ConcLow
	}
	for _, bp := range t {
		if aqi <= bp.AQIHigh {
			if aqi < bp.AQILow {
				aqi = bp.AQILow
			}
			return bp.ConcLow + (aqi-bp.AQILow)/(bp.AQIHigh-bp.AQILow)*(bp.ConcHigh-bp.ConcLow)
		}
	}
	return t[len(t)-1].ConcHigh
}

// Tables holds the EPA breakpoint tables per pollutant. PM values are
// µg/m³, gases are ppb except CO which is ppm.
var Tables = map[Pollutant]Table{
	PM25: NewTable(
		Breakpoint{0.0, 12.0, 0, 50},
		Breakpoint{12.1, 35.4, 51, 100},
		Breakpoint{35.5, 55.4, 101, 150},
		Breakpoint{55.5, 150.4, 151, 200},
		Breakpoint{150.5, 250.4, 201, 300},
		Breakpoint{250.5, 500.4, 301, 500},
	),
	PM10: NewTable(
		Breakpoint{0, 54, 0, 50},
		Breakpoint{55, 154, 51, 100},
		Breakpoint{155, 254, 101, 150},
		Breakpoint{255, 354, 151, 200},
		Breakpoint{355, 424, 201, 300},
		Breakpoint{425, 604, 301, 500},
	),
	O3: NewTable(
		Breakpoint{0, 54, 0, 50},
		Breakpoint{55, 70, 51, 100},
		Breakpoint{71, 85, 101, 150},
		Breakpoint{86, 105, 151, 200},
		Breakpoint{106, 200, 201, 300},
		Breakpoint{201, 504, 301, 500},
	),
	NO2: NewTable(
		Breakpoint{0, 53, 0, 50},
		Breakpoint{54, 100, 51, 100},
		Breakpoint{101, 360, 101, 150},
		Breakpoint{361, 649, 151, 200},
		Breakpoint{650, 1249, 201, 300},
		Breakpoint{1250, 2049, 301, 500},
	),
	SO2: NewTable(
		Breakpoint{0, 35, 0, 50},
		Breakpoint{36, 75, 51, 100},
		Breakpoint{76, 185, 101, 150},
		Breakpoint{186, 304, 151, 200},
		Breakpoint{305, 604, 201, 300},
		Breakpoint{605, 1004, 301, 500},
	),
	CO: NewTable(
		Breakpoint{0.0, 4.4, 0, 50},
		Breakpoint{4.5, 9.4, 51, 100},
		Breakpoint{9.5, 12.4, 101, 150},
		Breakpoint{12.5, 15.4, 151, 200},
		Breakpoint{15.5, 30.4, 201, 300},
		Breakpoint{30.5, 50.4, 301, 500},
	),
}

// TableFor returns the breakpoint table for a pollutant, falling back to
// the PM2.5 table for unknown pollutant keys. The fallback keeps lookups
// total; callers that care should stick to the Pollutants list.
func TableFor(p Pollutant) Table {
	if t, ok := Tables[p]; ok {
		return t
	}
	return Tables[PM25]
}

// SubIndex rounds the interpolated AQI to the whole number the EPA reports.
func SubIndex(p Pollutant, conc float64) int {
	return int(math.Round(TableFor(p).AQI(conc)))
}
