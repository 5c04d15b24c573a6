package openweather

// DailyForecasts keeps the first item of every calendar day, in input order.
// The day is the YYYY-MM-DD prefix of dt_txt, so running it on its own output changes nothing.
func DailyForecasts(items []ForecastItem) []ForecastItem {
	daily := make([]ForecastItem, 0, len(items)/8+1)
	seen := make(map[string]struct{}, len(items)/8+1)

	for _, item := range items {
		day := item.DtTxt
		if len(day) > 10 {
			day = day[:10]
		}

		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		daily = append(daily, item)
	}

	return daily
}
