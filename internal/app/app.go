package app

import (
	"context"
	"fmt"
	"time"

	"github.com/idklol/launcher/internal/state"
	"github.com/idklol/launcher/internal/ui"
)

// Run boots the launcher TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := NewEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	store := &state.Store{}
	env.RestoreSession(store)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	poller := NewPoller(ctx, env.Identity, store,
		WithInterval(interval),
		WithPollerLogger(env.Logger.Named("poller")))
	defer poller.Stop()

	// Start background poller
	poller.SetURL(env.Settings.Load().KeycloakURL)

	env.Logger.Info("launcher started")
	err = ui.Run(ui.Options{
		Context:   ctx,
		Auth:      env.Identity,
		Sessions:  env.Sessions,
		Launcher:  env.Launcher,
		Settings:  env.Settings,
		Poller:    poller,
		Store:     store,
		Logger:    env.Logger.Named("ui"),
		LogPath:   env.LogPath,
		PollTick:  time.Second,
		PrefsPath: opts.PrefsPath,
		Prefs:     env.Prefs,
	})
	env.Logger.Info("launcher stopped")
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
