// Package settings persists the launcher configuration record.
//
// # File Format
//
// The record lives in ~/.config/idklol-launcher/settings.yaml as one quoted
// key: value pair per line:
//
//	gameExecutablePath: "/opt/era/era"
//	gameServerUrl: "https://g.example"
//	chatServerUrl: ""
//	keycloakUrl: "http://localhost:8080"
//	logFileName: "date.log"
//
// The file is human-editable. Lines starting with # are comments, the value is
// everything after the first colon, and embedded double quotes are written as
// \". Only the five keys above are recognized; anything else is ignored.
//
// # Defaults
//
// Every field defaults to the empty string except keycloakUrl
// (http://localhost:8080) and logFileName (the date.log sentinel, see the logs
// package). A missing or unreadable file is the same as an all-default record,
// and a partial file is merged key by key over the defaults.
//
// # Writes
//
// Save always writes the whole record to a temporary file in the same
// directory and renames it into place, so readers never observe a partially
// written record. Concurrent writers are not coordinated.
package settings
