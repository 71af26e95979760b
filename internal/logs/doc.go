// Package logs configures the launcher's structured log sink.
//
// Records are JSON lines written below <settings dir>/logs/. The file name
// comes from the logFileName setting: the date.log sentinel (or an empty
// value) becomes YYYY-MM-DD.log, and a {date} token inside any other name is
// replaced with the current UTC date. The name is resolved once when the
// logger is built.
//
// Each line has the shape
//
//	{"level":"info","ts":"2026-03-09T22:15:00.123Z","message":"login succeeded","data":{...}}
//
// Components receive a *zap.Logger; Write accepts {level, message, data}
// entries coming from the presentation layer.
package logs
