// Package ui provides the launcher's terminal user interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model (Model) that switches between four
// pages. It never talks to the network or the filesystem directly during
// rendering: long-running work (sign-in, account creation, starting the game,
// reading the log tail) runs in tea.Cmd functions and comes back as messages.
//
// # Package Structure
//
//   - app.go: Model, Options, the root Update/View and the refresh tick
//   - login.go: sign-in and account creation form
//   - home.go: status badge, current settings summary, Play, header/footer
//   - settings.go: editor for the five settings keys
//   - logs.go: tail of the current log file in a viewport
//   - keys.go: key bindings (bubbles/key), rendered in the footer via bubbles/help
//   - theme.go: color palettes and Lipgloss styles
//
// # Pages
//
//   - Login: username and password. When the identity server advertises a
//     registration endpoint, ctrl+r switches to account creation (adds an
//     email field). Opening that mode is logged.
//   - Home: server status, signed-in user, configured game paths. p starts the
//     game; a missing executable path is reported as a configuration problem,
//     a failed start with the path-and-permissions hint.
//   - Settings: every key of the settings file. Saving writes the whole record
//     and points the status poller at the (possibly new) identity URL.
//   - Logs: decoded JSON log records, level-colored, following the tail.
//
// # State Flow
//
// The status poller writes to state.Store from its own goroutine. The model
// copies a snapshot on every tick and renders from the copy:
//
//	tickMsg ──> fetchSnapshotCmd ──> snapshotMsg ──> m.snapshot
//
// Polling failures only change the status badge. Sign-in, save and launch
// failures are shown as a message below the page.
//
// # Preferences
//
// ctrl+t cycles the theme. The theme and the last username that signed in
// successfully are saved to the prefs file.
package ui
