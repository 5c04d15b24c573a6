package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weatherkit/apis/geocoding"
	"weatherkit/apis/openweather"
	"weatherkit/cli"
	"weatherkit/config"
	"weatherkit/manager"
	"weatherkit/storage"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configRaw, os.Getenv("WEATHER_CONFIG"), ".env")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.OpenWeather.APIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set, weather requests will be rejected")
	}

	store, err := storage.NewSQLite(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()

	weather := openweather.New(cfg.OpenWeather.APIKey, openweather.WithBaseURL(cfg.OpenWeather.BaseURL))
	geocoder := geocoding.New(cfg.Geocoding.APIKey, geocoding.WithBaseURL(cfg.Geocoding.BaseURL))

	locations := manager.NewLocationService(store, geocoder, logger)
	if err := locations.Load(ctx, cfg.Storage.SeedDefaults); err != nil {
		return err
	}

	preferences := manager.NewPreferences(store, logger)
	if err := preferences.Load(ctx); err != nil {
		return err
	}
	unsubscribe := preferences.Subscribe(func(p manager.UserPreferences) {
		logger.Info("preferences updated", "celsius", p.IsCelsius, "dark", p.IsDarkMode, "locations", p.Locations)
	})
	defer unsubscribe()

	cmd, err := cli.New(cli.Dependencies{
		Weather:     weather,
		Locations:   locations,
		Preferences: preferences,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("new cli: %w", err)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	return nil
}
