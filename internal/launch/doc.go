// Package launch starts the game executable.
//
// A launch reads the settings once, refuses to run without a
// gameExecutablePath (ConfigurationError), and builds the argument list in a
// fixed order:
//
//	-gameServerUrl=<gameServerUrl>   when set
//	-chatServerUrl=<chatServerUrl>   when set
//	-authToken=<stored token>        when a token is stored and forwarding is on
//
// On macOS a path ending in .app is a directory bundle and is started with
// `open -n <bundle> --args <flags...>`. Everything else is executed directly.
//
// Children are spawned, not owned: they run in their own session (process
// group on Windows), their standard streams go to the null device, and the
// process handle is released right after start. Closing the launcher never
// stops the game. A failed start is logged and returned as a LaunchError that
// wraps the cause.
package launch
