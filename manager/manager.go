package manager

import (
	"context"

	"weatherkit/apis/openweather"
)

// Report is the outcome of one current weather lookup.
type Report struct {
	Location SavedLocation
	Weather  openweather.CurrentWeather
	Err      error
}

// CurrentForAll looks up every location concurrently. Each lookup is independent:
// a failure only marks its own report. Reports are returned in the order of locations.
func CurrentForAll(ctx context.Context, weather Weather, locations []SavedLocation) []Report {
	type result struct {
		index  int
		report Report
	}

	resultChannel := make(chan result, len(locations))

	for i, location := range locations {
		go func(i int, location SavedLocation) {
			info, err := weather.CurrentWeather(ctx, location.Latitude, location.Longitude)
			resultChannel <- result{index: i, report: Report{Location: location, Weather: info, Err: err}}
		}(i, location)
	}

	reports := make([]Report, len(locations))
	for range locations {
		res := <-resultChannel
		reports[res.index] = res.report
	}

	return reports
}
