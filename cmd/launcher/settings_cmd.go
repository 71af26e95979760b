package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idklol/launcher/internal/settings"
)

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change launcher settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settings.NewStore(flags.settingsPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), settings.Serialize(store.Load()))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set key=value [key=value...]",
		Short: "Change one or more settings",
		Long: `Change settings and save the whole record. Keys: ` + strings.Join(settings.Keys, ", ") + `.

Examples:
  launcher settings set gameExecutablePath=/Applications/Era.app
  launcher settings set keycloakUrl=https://id.example gameServerUrl=https://g.example`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.NewStore(flags.settingsPath)
			if err != nil {
				return err
			}
			current := store.Load()
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid assignment %q, want key=value", arg)
				}
				if err := current.Set(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
					return err
				}
			}
			if err := store.Save(current); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", store.Path())
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settings.NewStore(flags.settingsPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}

	settingsCmd.AddCommand(showCmd, setCmd, pathCmd)
	return settingsCmd
}
