package manager

import (
	"context"

	"github.com/google/uuid"

	"weatherkit/apis/geocoding"
	"weatherkit/apis/openweather"
)

type Weather interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (openweather.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) (openweather.ForecastResponse, error)
}

type Geocoding interface {
	Search(ctx context.Context, query string) ([]geocoding.Candidate, error)
}

// SavedLocation is a user curated place. Replace it rather than mutate it.
type SavedLocation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

func NewSavedLocation(name string, latitude, longitude float64) SavedLocation {
	return SavedLocation{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
	}
}

type UserPreferences struct {
	IsCelsius  bool     `json:"isCelsius"`
	IsDarkMode bool     `json:"isDarkMode"`
	Locations  []string `json:"locations"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		IsCelsius:  true,
		IsDarkMode: false,
		Locations:  []string{"San Francisco", "New York", "Paris"},
	}
}

func (p UserPreferences) clone() UserPreferences {
	p.Locations = append([]string(nil), p.Locations...)
	return p
}
