package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log level names accepted by the sink.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	dateSentinel = "date.log"
	dateToken    = "{date}"
	dateLayout   = "2006-01-02"
	dirName      = "logs"
)

// Config controls where launcher records are written.
type Config struct {
	Dir        string // directory holding the logs/ folder
	FileName   string // template from settings; may contain {date}
	Level      string
	Console    bool
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// ResolveFileName turns the configured template into a concrete file name.
// An empty name or the date.log sentinel selects "<YYYY-MM-DD>.log". The date
// is the UTC calendar date.
func ResolveFileName(name string, now time.Time) string {
	date := now.UTC().Format(dateLayout)
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == dateSentinel {
		return date + ".log"
	}
	return strings.Replace(trimmed, dateToken, date, 1)
}

// Dir returns the log directory below base.
func Dir(base string) string {
	return filepath.Join(base, dirName)
}

// FilePath returns the log file the config resolves to at now.
func FilePath(cfg Config, now time.Time) string {
	return filepath.Join(Dir(cfg.Dir), ResolveFileName(cfg.FileName, now))
}

// Setup builds the launcher logger. Records go to the resolved log file as
// JSON lines and optionally to stderr.
func Setup(cfg Config) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)

	var cores []zapcore.Core
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.AddSync(os.Stderr), level))
	}

	if strings.TrimSpace(cfg.Dir) != "" {
		path := FilePath(cfg, time.Now())
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		writer := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(cfg.MaxSize, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAge, 30),
		}
		cores = append(cores, zapcore.NewCore(JSONEncoder(), zapcore.AddSync(writer), level))
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("no log outputs configured")
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// JSONEncoder writes {"ts","level","message",...} records.
func JSONEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.CallerKey = zapcore.OmitKey
	encoderConfig.StacktraceKey = zapcore.OmitKey
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func consoleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.CallerKey = zapcore.OmitKey
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func parseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
