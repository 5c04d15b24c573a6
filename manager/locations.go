package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"weatherkit/apis/geocoding"
	"weatherkit/storage"
)

var ErrLocationNotFound = errors.New("location not found")

var defaultCities = []struct {
	name     string
	lat, lon float64
}{
	{"London", 51.5074, -0.1278},
	{"Paris", 48.8566, 2.3522},
	{"New York", 40.7128, -74.0060},
	{"Tokyo", 35.6762, 139.6503},
	{"Sydney", -33.8688, 151.2093},
	{"Dubai", 25.2048, 55.2708},
	{"Singapore", 1.3521, 103.8198},
	{"Rome", 41.9028, 12.4964},
	{"Cairo", 30.0444, 31.2357},
	{"Rio de Janeiro", -22.9068, -43.1729},
}

// LocationService owns the saved location list. Every change rewrites the
// whole list in the store before it becomes visible.
type LocationService struct {
	mu        sync.RWMutex
	locations []SavedLocation
	store     storage.Store
	geocoding Geocoding
	logger    *slog.Logger
}

func NewLocationService(store storage.Store, geocoding Geocoding, logger *slog.Logger) *LocationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LocationService{
		store:     store,
		geocoding: geocoding,
		logger:    logger,
	}
}

// Load reads the persisted list. An unreadable blob counts as empty.
// With seedDefaults an empty list is filled with well known cities.
func (s *LocationService) Load(ctx context.Context, seedDefaults bool) error {
	data, err := s.store.Get(ctx, storage.KeySavedLocations)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load saved locations: %w", err)
	}

	var locations []SavedLocation
	if err == nil {
		if err := json.Unmarshal(data, &locations); err != nil {
			s.logger.Warn("stored locations are unreadable, starting empty", "error", err)
			locations = nil
		}
	}

	s.mu.Lock()
	s.locations = locations
	s.mu.Unlock()

	s.logger.Debug("saved locations loaded", "count", len(locations))

	if len(locations) > 0 || !seedDefaults {
		return nil
	}

	seeded := make([]SavedLocation, 0, len(defaultCities))
	for _, city := range defaultCities {
		seeded = append(seeded, NewSavedLocation(city.name, city.lat, city.lon))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(ctx, seeded)
}

func (s *LocationService) List() []SavedLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]SavedLocation(nil), s.locations...)
}

func (s *LocationService) Add(ctx context.Context, name string, latitude, longitude float64) (SavedLocation, error) {
	location := NewSavedLocation(name, latitude, longitude)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]SavedLocation, 0, len(s.locations)+1)
	next = append(next, s.locations...)
	next = append(next, location)

	if err := s.replace(ctx, next); err != nil {
		return SavedLocation{}, err
	}

	s.logger.Info("location added", "id", location.ID, "name", location.Name)

	return location, nil
}

func (s *LocationService) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]SavedLocation, 0, len(s.locations))
	for _, location := range s.locations {
		if location.ID != id {
			next = append(next, location)
		}
	}

	if len(next) == len(s.locations) {
		return fmt.Errorf("%w: %s", ErrLocationNotFound, id)
	}

	if err := s.replace(ctx, next); err != nil {
		return err
	}

	s.logger.Info("location removed", "id", id)

	return nil
}

func (s *LocationService) Search(ctx context.Context, query string) ([]geocoding.Candidate, error) {
	if s.geocoding == nil {
		return nil, errors.New("geocoding not configured")
	}
	return s.geocoding.Search(ctx, query)
}

// replace persists next and swaps it in. Callers hold s.mu.
func (s *LocationService) replace(ctx context.Context, next []SavedLocation) error {
	if next == nil {
		next = []SavedLocation{}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode saved locations: %w", err)
	}

	if err := s.store.Put(ctx, storage.KeySavedLocations, data); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}

	s.locations = next
	return nil
}
