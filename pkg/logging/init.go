package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// NewHandler creates a handler of the given type writing to w. Color is only
// used by the tint handler.
func NewHandler(w io.Writer, loggingType string, logLevelName string, color bool) (slog.Handler, error) {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(logLevelName))
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: %v", err)
	}

	logHandlerOptions := slog.HandlerOptions{
		AddSource: logLevel <= slog.LevelDebug,
		Level:     logLevel,
	}

	switch loggingType {
	case JSON:
		return slog.NewJSONHandler(w, &logHandlerOptions), nil
	case Text:
		return slog.NewTextHandler(w, &logHandlerOptions), nil
	case Tint:
		return tint.NewHandler(w, &tint.Options{
			AddSource: logHandlerOptions.AddSource,
			Level:     logHandlerOptions.Level,
			NoColor:   !color,
		}), nil
	default:
		return nil, fmt.Errorf("unknown logging type: %s", loggingType)
	}
}

// Initialize installs the default logger. Logs go to w, which is stderr in
// the CLI so stdout stays reserved for the run report.
func Initialize(w io.Writer, loggingType string, logLevelName string, color bool) error {
	handler, err := NewHandler(w, loggingType, logLevelName, color)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "type", loggingType, "logLevel", logLevelName)
	return nil
}
