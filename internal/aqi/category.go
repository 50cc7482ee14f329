package aqi

// Category describes an AQI status band with its display metadata and
// standing health advice.
type Category struct {
	Label          string `json:"label"`
	Color          string `json:"color"`
	Recommendation string `json:"recommendation"`
}

var categories = []struct {
	max float64
	cat Category
}{
	{50, Category{"Good", "#00e400", "Air quality is satisfactory; enjoy outdoor activities."}},
	{100, Category{"Moderate", "#ffff00", "Unusually sensitive people should consider reducing prolonged outdoor exertion."}},
	{150, Category{"Unhealthy for Sensitive Groups", "#ff7e00", "Sensitive groups should reduce prolonged or heavy outdoor exertion."}},
	{200, Category{"Unhealthy", "#ff0000", "Everyone should reduce prolonged outdoor exertion."}},
	{300, Category{"Very Unhealthy", "#8f3f97", "Avoid outdoor activity; sensitive groups should remain indoors."}},
}

var hazardous = Category{"Hazardous", "#7e0023", "Everyone should avoid all outdoor exertion."}

// CategoryFor maps an AQI value to its status band. Thresholds are the
// standard 50/100/150/200/300 cut points; anything above is Hazardous.
func CategoryFor(aqi float64) Category {
	for _, c := range categories {
		if aqi <= c.max {
			return c.cat
		}
	}
	return hazardous
}
