package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weatherkit/apis/geocoding"
	"weatherkit/apis/openweather"
	"weatherkit/manager"
)

type Locations interface {
	List() []manager.SavedLocation
	Add(ctx context.Context, name string, latitude, longitude float64) (manager.SavedLocation, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]geocoding.Candidate, error)
}

type Preferences interface {
	Get() manager.UserPreferences
	Save(ctx context.Context, prefs manager.UserPreferences) error
	Reset(ctx context.Context) error
}

type Dependencies struct {
	Weather     manager.Weather
	Locations   Locations
	Preferences Preferences
	Logger      *slog.Logger
}

func New(deps Dependencies) (*cobra.Command, error) {
	if deps.Weather == nil || deps.Locations == nil || deps.Preferences == nil {
		return nil, fmt.Errorf("cli: weather, locations and preferences are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	cmd := &cobra.Command{
		Use:           "weather",
		Short:         "CLI application for current weather and forecasts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newCurrentCommand(deps),
		newForecastCommand(deps),
		newLocationsCommand(deps),
		newPrefsCommand(deps),
	)

	return cmd, nil
}

func coordinateFlags(cmd *cobra.Command, lat, lon *float64) {
	cmd.Flags().Float64Var(lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(lon, "lon", 0, "longitude in decimal degrees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
}

func newCurrentCommand(deps Dependencies) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Current weather at a coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := deps.Weather.CurrentWeather(cmd.Context(), lat, lon)
			if err != nil {
				deps.Logger.Debug("current weather failed", "lat", lat, "lon", lon, "error", err)
				return describe(err)
			}

			printCurrent(cmd, info, deps.Preferences.Get().IsCelsius)
			return nil
		},
	}
	coordinateFlags(cmd, &lat, &lon)

	return cmd
}

func newForecastCommand(deps Dependencies) *cobra.Command {
	var (
		lat, lon float64
		daily    bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "5 day / 3 hour forecast at a coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forecast, err := deps.Weather.Forecast(cmd.Context(), lat, lon)
			if err != nil {
				deps.Logger.Debug("forecast failed", "lat", lat, "lon", lon, "error", err)
				return describe(err)
			}

			items := forecast.List
			if daily {
				items = openweather.DailyForecasts(items)
			}

			celsius := deps.Preferences.Get().IsCelsius
			offset := time.Duration(forecast.City.Timezone) * time.Second

			cmd.Printf("LOCATION\t %s, %s\n", forecast.City.Name, forecast.City.Country)
			for _, item := range items {
				local := time.Unix(item.Dt, 0).UTC().Add(offset)
				cmd.Printf("%s\t %8s  %3.0f%%  %s\n",
					local.Format("Mon 02 Jan 15:04"),
					formatTemp(item.Main.Temp, celsius),
					item.Main.Humidity,
					conditions(item.Weather),
				)
			}

			return nil
		},
	}
	coordinateFlags(cmd, &lat, &lon)
	cmd.Flags().BoolVar(&daily, "daily", false, "show one entry per day")

	return cmd
}

func printCurrent(cmd *cobra.Command, info openweather.CurrentWeather, celsius bool) {
	cmd.Printf("LOCATION\t %s (%s, %s)\n", info.Name,
		strconv.FormatFloat(info.Coord.Lat, 'f', -1, 64),
		strconv.FormatFloat(info.Coord.Lon, 'f', -1, 64),
	)
	cmd.Printf("CONDITION\t %s\n", conditions(info.Weather))
	cmd.Printf("TEMP\t\t %s (feels like %s, min %s, max %s)\n",
		formatTemp(info.Main.Temp, celsius),
		formatTemp(info.Main.FeelsLike, celsius),
		formatTemp(info.Main.TempMin, celsius),
		formatTemp(info.Main.TempMax, celsius),
	)
	cmd.Printf("HUMIDITY\t %.0f%%\n", info.Main.Humidity)
	cmd.Printf("PRESSURE\t %.0f hPa\n", info.Main.Pressure)
	cmd.Printf("WIND\t\t %.1f m/s %.0f°\n", info.Wind.Speed, info.Wind.Deg)
}

func conditions(list []openweather.Condition) string {
	parts := make([]string, 0, len(list))
	for _, c := range list {
		parts = append(parts, c.Description)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// formatTemp renders a metric temperature in the preferred unit.
func formatTemp(celsius float64, useCelsius bool) string {
	if useCelsius {
		return fmt.Sprintf("%.1f°C", celsius)
	}
	return fmt.Sprintf("%.1f°F", celsius*9/5+32)
}

// describe turns a client error into its user facing message, keeping the cause for errors.Is.
func describe(err error) error {
	d := openweather.Describe(err)
	return fmt.Errorf("%s. %s: %w", d.Title, d.Suggestion, err)
}
