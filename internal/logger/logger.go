package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "chemocompanion.log"

// Logger is the process-wide logger. It writes warnings to stderr until Init
// replaces it.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:  log.WarnLevel,
	Prefix: "chemocompanion",
})

type Config struct {
	Debug  bool
	LogDir string
}

// Init points the logger at a rotating file under cfg.LogDir. Debug mode
// lowers the level and mirrors output to stderr.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, logFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "chemocompanion",
	})
	return nil
}

// StandardLog adapts the logger for libraries that expect a *log.Logger,
// such as gorm's logger writer.
func StandardLog(level log.Level) *stdlog.Logger {
	return Logger.StandardLog(log.StandardLogOptions{ForceLevel: level})
}

func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
	os.Exit(1)
}
