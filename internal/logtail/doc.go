// Package logtail reads the tail of the launcher's log file for the Logs page
// and the `logs` command.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries and scans the file once, so
// memory stays bounded by the request rather than the file size. Blank lines
// are skipped. A missing file is not an error; a launcher that has never
// logged simply has nothing to show.
//
//	lines, err := logtail.Read(path, 200)
//
// # Decoding
//
// Log files are JSON lines written by internal/logs. ParseLine pulls out the
// well-known keys (ts, level, message, data) with gjson and keeps every other
// key as a raw JSON string in Fields. Lines that are not JSON objects, such as
// a partially flushed write, come back with only Raw set.
//
// Format renders a record on one line for display:
//
//	10:15:30 INFO  identity status check succeeded registration=true url=http://id/realms/idklol
package logtail
