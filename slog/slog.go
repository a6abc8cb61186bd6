// Package slog declares logging options with keyopts and configures the
// default log/slog logger from the parsed result.
package slog

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/isobit/keyopts"
)

const (
	LevelFlag = "log-level"
	JSONFlag  = "log-json"
)

type Options struct {
	Level slog.Level
	JSON  bool
}

// Definitions returns definitions for --log-level and --log-json, keyed by
// levelKey and jsonKey.
func Definitions[K comparable](levelKey, jsonKey K) []keyopts.KeyedDefinition[K] {
	return []keyopts.KeyedDefinition[K]{
		keyopts.Define(levelKey, 0, LevelFlag, 1, 1,
			"Minimum level of log records to emit: debug, info, warn or error.",
			"info",
		),
		keyopts.Define(jsonKey, 0, JSONFlag, 0, 0,
			"Emit log records as JSON instead of text.",
		),
	}
}

// FromParsed reads the options declared by Definitions out of po.
func FromParsed[K comparable](po *keyopts.ParsedOptions[K], levelKey, jsonKey K) (Options, error) {
	opts := Options{
		JSON: po.IsPresent(jsonKey),
	}
	if po.IsPresent(levelKey) {
		level := po.LatestValue(levelKey)
		if err := opts.Level.UnmarshalText([]byte(level)); err != nil {
			return opts, errors.Wrapf(err, "invalid --%s %q", LevelFlag, level)
		}
	}
	return opts, nil
}

// NewLogger returns a logger writing to w, leaving the default logger alone.
func (opts *Options) NewLogger(w io.Writer, handlerOpts *slog.HandlerOptions) *slog.Logger {
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{}
	}
	handlerOpts.Level = opts.Level

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

func (opts *Options) ConfigureWithHandlerOptions(w io.Writer, handlerOpts *slog.HandlerOptions) *slog.Logger {
	logger := opts.NewLogger(w, handlerOpts)
	slog.SetDefault(logger)
	return logger
}

func (opts *Options) Configure() *slog.Logger {
	return opts.ConfigureWithHandlerOptions(os.Stderr, nil)
}
