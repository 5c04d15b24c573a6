package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherkit/apis/geocoding"
	"weatherkit/apis/openweather"
	"weatherkit/manager"
	"weatherkit/storage"
)

type fakeWeather struct {
	current  map[float64]openweather.CurrentWeather
	forecast openweather.ForecastResponse
	err      error
}

func (f *fakeWeather) CurrentWeather(_ context.Context, lat, _ float64) (openweather.CurrentWeather, error) {
	if f.err != nil {
		return openweather.CurrentWeather{}, f.err
	}
	info, ok := f.current[lat]
	if !ok {
		return openweather.CurrentWeather{}, &openweather.APIError{StatusCode: 404}
	}
	return info, nil
}

func (f *fakeWeather) Forecast(context.Context, float64, float64) (openweather.ForecastResponse, error) {
	if f.err != nil {
		return openweather.ForecastResponse{}, f.err
	}
	return f.forecast, nil
}

type fakeGeocoding struct{}

func (fakeGeocoding) Search(_ context.Context, query string) ([]geocoding.Candidate, error) {
	if query == "Rio de Janeiro" {
		return []geocoding.Candidate{{Name: "Rio de Janeiro", Latitude: -22.9068, Longitude: -43.1729}}, nil
	}
	return nil, nil
}

var london = openweather.CurrentWeather{
	Coord:   openweather.Coord{Lat: 51.5074, Lon: -0.1278},
	Weather: []openweather.Condition{{ID: 803, Main: "Clouds", Description: "broken clouds", Icon: "04d"}},
	Main:    openweather.Main{Temp: 15.2, FeelsLike: 14.6, TempMin: 13.9, TempMax: 16.4, Pressure: 1012, Humidity: 72},
	Name:    "London",
	Wind:    openweather.Wind{Speed: 4.1, Deg: 240},
}

type harness struct {
	weather     *fakeWeather
	locations   *manager.LocationService
	preferences *manager.Preferences
	store       storage.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemory()

	locations := manager.NewLocationService(store, fakeGeocoding{}, logger)
	require.NoError(t, locations.Load(context.Background(), false))

	preferences := manager.NewPreferences(store, logger)
	require.NoError(t, preferences.Load(context.Background()))

	return &harness{
		weather:     &fakeWeather{current: map[float64]openweather.CurrentWeather{51.5074: london}},
		locations:   locations,
		preferences: preferences,
		store:       store,
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd, err := New(Dependencies{
		Weather:     h.weather,
		Locations:   h.locations,
		Preferences: h.preferences,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err)
}

func TestCurrent(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "current", "--lat=51.5074", "--lon=-0.1278")
	require.NoError(t, err)

	assert.Contains(t, out, "London (51.5074, -0.1278)")
	assert.Contains(t, out, "broken clouds")
	assert.Contains(t, out, "15.2°C")
	assert.Contains(t, out, "72%")
	assert.Contains(t, out, "1012 hPa")
}

func TestCurrentFahrenheit(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "prefs", "set", "--celsius=false")
	require.NoError(t, err)

	out, err := h.run(t, "current", "--lat=51.5074", "--lon=-0.1278")
	require.NoError(t, err)
	assert.Contains(t, out, "59.4°F")
}

func TestCurrentError(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "current", "--lat=1", "--lon=2")
	require.Error(t, err)

	code, ok := openweather.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, 404, code)
	assert.Contains(t, err.Error(), "Location not found")
}

func TestCurrentRequiresCoordinates(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "current", "--lat=1")
	assert.Error(t, err)
}

func TestForecast(t *testing.T) {
	h := newHarness(t)
	h.weather.forecast = openweather.ForecastResponse{
		City: openweather.City{Name: "London", Country: "GB", Timezone: 3600},
		List: []openweather.ForecastItem{
			{Dt: 1700006400, DtTxt: "2023-11-15 00:00:00", Main: openweather.ForecastMain{Temp: 9.5, Humidity: 81}},
			{Dt: 1700017200, DtTxt: "2023-11-15 03:00:00", Main: openweather.ForecastMain{Temp: 9.0, Humidity: 84}},
			{Dt: 1700092800, DtTxt: "2023-11-16 00:00:00", Main: openweather.ForecastMain{Temp: 11.2, Humidity: 70},
				Weather: []openweather.Condition{{Description: "clear sky"}}},
		},
	}

	out, err := h.run(t, "forecast", "--lat=51.5074", "--lon=-0.1278")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCATION\t London, GB")
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "Wed 15 Nov 01:00")
	assert.Contains(t, out, "clear sky")

	out, err = h.run(t, "forecast", "--lat=51.5074", "--lon=-0.1278", "--daily")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.NotContains(t, out, "9.0°C")
}

func TestForecastError(t *testing.T) {
	h := newHarness(t)
	h.weather.err = &openweather.NetworkError{Message: "No internet connection"}

	_, err := h.run(t, "forecast", "--lat=1", "--lon=2")
	require.Error(t, err)
	assert.True(t, openweather.IsNetworkError(err))
	assert.Contains(t, err.Error(), "Connection Problem")
}

func TestLocations(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "locations", "add", "New", "York", "--lat=40.7128", "--lon=-74.0060")
	require.NoError(t, err)
	assert.Contains(t, out, "New York")

	list := h.locations.List()
	require.Len(t, list, 1)
	assert.Equal(t, "New York", list[0].Name)
	assert.Equal(t, -74.006, list[0].Longitude)

	out, err = h.run(t, "locations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, list[0].ID.String())
	assert.Contains(t, out, "40.7128")

	out, err = h.run(t, "locations", "remove", list[0].ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	assert.Empty(t, h.locations.List())

	_, err = h.run(t, "locations", "remove", list[0].ID.String())
	assert.ErrorIs(t, err, manager.ErrLocationNotFound)

	_, err = h.run(t, "locations", "remove", "not-a-uuid")
	assert.Error(t, err)
}

func TestLocationsSearch(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "locations", "search", "Rio", "de", "Janeiro")
	require.NoError(t, err)
	assert.Contains(t, out, "Rio de Janeiro")
	assert.Contains(t, out, "-22.9068")

	out, err = h.run(t, "locations", "search", "Atlantis")
	require.NoError(t, err)
	assert.Contains(t, out, "no results")
}

func TestLocationsWeather(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.locations.Add(ctx, "London", 51.5074, -0.1278)
	require.NoError(t, err)
	_, err = h.locations.Add(ctx, "Atlantis", 0, 0)
	require.NoError(t, err)

	out, err := h.run(t, "locations", "weather")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "London")
	assert.Contains(t, lines[0], "15.2°C")
	assert.Contains(t, lines[1], "Atlantis")
	assert.Contains(t, lines[1], "Weather Service Error (404)")
}

func TestPrefs(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "celsius")
	assert.Contains(t, out, "light")
	assert.Contains(t, out, "San Francisco, New York, Paris")

	_, err = h.run(t, "prefs", "set", "--dark", "--locations=Oslo,Bergen")
	require.NoError(t, err)
	assert.Equal(t, manager.UserPreferences{
		IsCelsius:  true,
		IsDarkMode: true,
		Locations:  []string{"Oslo", "Bergen"},
	}, h.preferences.Get())

	out, err = h.run(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "Oslo, Bergen")

	_, err = h.run(t, "prefs", "reset")
	require.NoError(t, err)
	assert.Equal(t, manager.DefaultPreferences(), h.preferences.Get())
}
