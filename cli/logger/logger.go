package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error"`
	LogFile   string `doc:"append logs to file, - for stdout"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
	LogSource bool   `doc:"add source file and line to logs"`
}

var (
	errLevel  = errors.New("unknown log level")
	errFormat = errors.New("unknown log format")
)

func parseLevel(option string) (slog.Leveler, error) {
	switch strings.ToLower(option) {
	case "":
		return nil, nil //nolint: nilnil // default level
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return nil, fmt.Errorf("%w %q", errLevel, option)
	}
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w %q", errFormat, format)
	}
}

// New returns a logger configured by options. Invalid options fall back
// to their defaults and the returned logger warns about them once.
func New(options *Options) *slog.Logger {
	return newWithStdout(options, os.Stdout)
}

func newWithStdout(options *Options, stdout io.Writer) *slog.Logger {
	var warnings []error

	level, err := parseLevel(options.LogLevel)
	if err != nil {
		warnings = append(warnings, err)
		options.LogLevel = ""
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: options.LogSource}

	var output io.Writer
	switch options.LogFile {
	case "", "-":
		output = stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("could not open log file: %w", err))
			options.LogFile = ""
			output = stdout
		} else {
			output = f
		}
	}

	handler, err := newHandler(options.LogFormat, output, opts)
	if err != nil {
		warnings = append(warnings, err)
		options.LogFormat = "text"
		handler, _ = newHandler(options.LogFormat, output, opts)
	}

	logger := slog.New(handler)
	for _, w := range warnings {
		logger.Warn("invalid logger option, using default", "err", w)
	}
	return logger
}
