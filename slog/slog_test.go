package slog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isobit/keyopts"
)

type key string

const (
	levelKey key = "level"
	jsonKey  key = "json"
)

func TestFromParsed(t *testing.T) {
	r := keyopts.New(Definitions(levelKey, jsonKey))

	cases := []struct {
		args []string
		opts Options
	}{
		{
			[]string{"exe"},
			Options{Level: slog.LevelInfo},
		},
		{
			[]string{"exe", "--log-level", "debug"},
			Options{Level: slog.LevelDebug},
		},
		{
			[]string{"exe", "--log-json", "--log-level", "WARN"},
			Options{Level: slog.LevelWarn, JSON: true},
		},
	}

	for _, c := range cases {
		po, err := r.Parse(c.args)
		require.NoError(t, err, "%v", c.args)
		opts, err := FromParsed(po, levelKey, jsonKey)
		require.NoError(t, err, "%v", c.args)
		assert.Equal(t, c.opts, opts, "%v", c.args)
	}
}

func TestFromParsedInvalidLevel(t *testing.T) {
	r := keyopts.New(Definitions(levelKey, jsonKey))
	po, err := r.Parse([]string{"exe", "--log-level", "loud"})
	require.NoError(t, err)

	_, err = FromParsed(po, levelKey, jsonKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --log-level "loud"`)
}

func TestConfigure(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	cases := []struct {
		opts    Options
		contain string
	}{
		{Options{Level: slog.LevelInfo}, "msg=hello"},
		{Options{Level: slog.LevelInfo, JSON: true}, `"msg":"hello"`},
	}

	for _, c := range cases {
		b := &bytes.Buffer{}
		logger := c.opts.ConfigureWithHandlerOptions(b, nil)
		logger.Debug("hidden")
		slog.Info("hello")
		assert.Contains(t, b.String(), c.contain)
		assert.NotContains(t, b.String(), "hidden")
	}
}

func TestNewLoggerKeepsDefault(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	opts := Options{Level: slog.LevelDebug}
	b := &bytes.Buffer{}
	logger := opts.NewLogger(b, nil)
	logger.Debug("traced")

	assert.Same(t, old, slog.Default())
	assert.Contains(t, b.String(), "msg=traced")
}
