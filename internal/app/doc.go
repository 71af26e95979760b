// Package app wires the launcher together and owns the identity status
// poller.
//
// # Overview
//
// NewEnv is the composition root shared by the TUI and the CLI commands:
//
//  1. Resolve the settings file (~/.config/idklol-launcher/settings.yaml)
//  2. Set up logging below <settings dir>/logs, file name from logFileName
//  3. Load UI preferences
//  4. Build the identity client, keyring token store and launch coordinator
//
// Run adds the pieces only the TUI needs: a state.Store, the Poller pointed at
// the configured identity URL, and ui.Run, which blocks until exit.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> NewEnv()             settings, logs, clients
//	       ├─────> RestoreSession()     stored token → signed in
//	       ├─────> NewPoller().SetURL() identity status in the background
//	       └─────> ui.Run()             TUI (blocks)
//
// # Status Polling
//
// Poller is a two-state machine. It is idle until SetURL receives a non-empty
// base URL, then probes immediately and every 15 seconds after that. Each
// result becomes a state.Update applied to the store.
//
//   - SetURL("") reports the server offline at once and stops probing.
//   - SetURL with a different URL stops the old loop and starts a new one.
//   - Stop (or cancelling the parent context) ends polling for good.
//
// Every loop carries a generation number. A probe that finishes after its
// loop was replaced or stopped is discarded, so a slow response can never
// overwrite newer state or resurrect a cleared URL.
//
// # Error Handling
//
// Only an unresolvable settings path is fatal. A log directory that cannot be
// created degrades to no file logging; a keyring that cannot be read means the
// user has to sign in again.
package app
