package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weatherkit/manager"
)

func newLocationsCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage saved locations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, location := range deps.Locations.List() {
					cmd.Printf("%s\t %-16s %9.4f %9.4f\n", location.ID, location.Name, location.Latitude, location.Longitude)
				}
				return nil
			},
		},
		newLocationsAddCommand(deps),
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a saved location",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", args[0], err)
				}

				if err := deps.Locations.Remove(cmd.Context(), id); err != nil {
					return err
				}

				cmd.Printf("removed %s\n", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Find places by name",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				candidates, err := deps.Locations.Search(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}

				if len(candidates) == 0 {
					cmd.Printf("no results\n")
					return nil
				}

				for _, c := range candidates {
					cmd.Printf("%-24s %9.4f %9.4f\n", c.Name, c.Latitude, c.Longitude)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "weather",
			Short: "Current weather for every saved location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				celsius := deps.Preferences.Get().IsCelsius

				for _, report := range manager.CurrentForAll(cmd.Context(), deps.Weather, deps.Locations.List()) {
					if report.Err != nil {
						deps.Logger.Debug("location weather failed", "name", report.Location.Name, "error", report.Err)
						cmd.Printf("%-16s %s\n", report.Location.Name, describe(report.Err))
						continue
					}

					cmd.Printf("%-16s %8s  %s\n", report.Location.Name,
						formatTemp(report.Weather.Main.Temp, celsius),
						conditions(report.Weather.Weather),
					)
				}
				return nil
			},
		},
	)

	return cmd
}

func newLocationsAddCommand(deps Dependencies) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := deps.Locations.Add(cmd.Context(), strings.Join(args, " "), lat, lon)
			if err != nil {
				return err
			}

			cmd.Printf("added %s\t %s\n", location.ID, location.Name)
			return nil
		},
	}
	coordinateFlags(cmd, &lat, &lon)

	return cmd
}
