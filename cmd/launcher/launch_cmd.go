package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idklol/launcher/internal/launch"
	"github.com/idklol/launcher/internal/settings"
)

func newLaunchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Start the game with the configured servers and stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.env()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.Launcher.Launch(); err != nil {
				if launch.IsConfigurationError(err) {
					return fmt.Errorf("%w Set it with: launcher settings set %s=/path/to/game", err, settings.KeyGameExecutablePath)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Game started.")
			return nil
		},
	}
}
