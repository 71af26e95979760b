package logs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Entry is a structured record handed to the sink by the presentation layer.
type Entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Record is one decoded line of a launcher log file. Data and Fields hold
// the raw JSON of their values.
type Record struct {
	TS      time.Time
	Level   string
	Message string
	Data    string
	Fields  map[string]string
	// Raw is the line as read. Lines that are not JSON carry only Raw.
	Raw string
}

// Validate reports whether the entry carries a known level and a message.
func (e Entry) Validate() error {
	switch e.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("unknown log level %q", e.Level)
	}
	if e.Message == "" {
		return fmt.Errorf("log message is empty")
	}
	return nil
}

// Write emits entry through logger. Invalid entries are dropped.
func Write(logger *zap.Logger, entry Entry) {
	if logger == nil || entry.Validate() != nil {
		return
	}
	fields := []zap.Field{}
	if entry.Data != nil {
		fields = append(fields, zap.Any("data", entry.Data))
	}
	logger.Log(parseLevel(entry.Level), entry.Message, fields...)
}
