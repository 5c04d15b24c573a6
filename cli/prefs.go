package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPrefsCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := deps.Preferences.Get()

			unit := "celsius"
			if !prefs.IsCelsius {
				unit = "fahrenheit"
			}
			theme := "light"
			if prefs.IsDarkMode {
				theme = "dark"
			}

			cmd.Printf("UNITS\t\t %s\n", unit)
			cmd.Printf("THEME\t\t %s\n", theme)
			cmd.Printf("LOCATIONS\t %s\n", strings.Join(prefs.Locations, ", "))
			return nil
		},
	}

	var (
		celsius, dark bool
		locations     []string
	)

	set := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; unspecified flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := deps.Preferences.Get()

			if cmd.Flags().Changed("celsius") {
				prefs.IsCelsius = celsius
			}
			if cmd.Flags().Changed("dark") {
				prefs.IsDarkMode = dark
			}
			if cmd.Flags().Changed("locations") {
				prefs.Locations = locations
			}

			return deps.Preferences.Save(cmd.Context(), prefs)
		},
	}
	set.Flags().BoolVar(&celsius, "celsius", true, "show temperatures in Celsius")
	set.Flags().BoolVar(&dark, "dark", false, "dark theme")
	set.Flags().StringSliceVar(&locations, "locations", nil, "default location names")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Preferences.Reset(cmd.Context())
		},
	}

	cmd.AddCommand(show, set, reset)

	return cmd
}
