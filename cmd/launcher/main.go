package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idklol/launcher/internal/app"
	"github.com/idklol/launcher/internal/settings"
)

var version = "v0.1.0" // injected by -ldflags during release builds

type rootFlags struct {
	settingsPath string
	prefsPath    string
	poll         int
	logLevel     string
	forwardToken bool
	verbose      bool
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		SettingsPath: f.settingsPath,
		PrefsPath:    f.prefsPath,
		PollEvery:    f.poll,
		LogLevel:     f.logLevel,
		ForwardToken: f.forwardToken,
		Console:      f.verbose,
	}
}

func (f *rootFlags) env() (*app.Env, error) {
	return app.NewEnv(f.options())
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "launcher: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "launcher",
		Short:   "idklol game launcher",
		Long:    "Sign in to the idklol identity server, manage launcher settings and start the game.\nRun without a subcommand to open the interactive launcher.",
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.settingsPath, "settings", "", "Settings file path (default: "+settings.DefaultPath()+")")
	pf.StringVar(&flags.prefsPath, "prefs", "", "UI preferences file path (default: ~/.config/idklol-launcher/prefs.toml)")
	pf.IntVar(&flags.poll, "poll", 15, "Identity server status interval in seconds")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.BoolVar(&flags.forwardToken, "forward-token", true, "Pass the stored access token to the game (use --forward-token=false to disable)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Mirror log records to stderr")

	rootCmd.AddCommand(
		newStatusCmd(flags),
		newLoginCmd(flags),
		newLogoutCmd(flags),
		newRegisterCmd(flags),
		newLaunchCmd(flags),
		newSettingsCmd(flags),
		newLogsCmd(flags),
	)
	return rootCmd
}
