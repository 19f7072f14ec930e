package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolerp/edge/pkg/environment"
	"github.com/schoolerp/edge/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("hello")
	entry := decode(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { logger.WithFormat("xml") })
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithEnvironment(environment.Development, "edge")).Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=edge")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(environment.Production, "edge"))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "edge", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	opts, err := logger.FromConfig(logger.Config{
		Env:     environment.Production,
		Service: "edge",
		Level:   "debug",
		Format:  logger.FormatText,
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	logger.New(append(opts, logger.WithOutput(buf))...).Debug("msg")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "env=production")

	_, err = logger.FromConfig(logger.Config{Level: "loud"})
	assert.Error(t, err)
}

func TestFormat_UnmarshalText(t *testing.T) {
	t.Parallel()

	var f logger.Format
	require.NoError(t, f.UnmarshalText([]byte("TEXT")))
	assert.Equal(t, logger.FormatText, f)
	assert.Error(t, f.UnmarshalText([]byte("xml")))
	assert.Equal(t, logger.FormatText, f)
}

type ctxKey struct{}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithAttr(slog.String("component", "edge")),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(ctxKey{}).(string); ok {
				return slog.String("request_id", v), true
			}
			return slog.Attr{}, false
		}),
	)

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-1"), "with id")
	entry := decode(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "edge", entry["component"])

	buf.Reset()
	log.With(slog.String("k", "v")).WithGroup("g").InfoContext(
		context.WithValue(context.Background(), ctxKey{}, "req-2"), "grouped", slog.Int("n", 1))
	entry = decode(t, buf)
	assert.Equal(t, "v", entry["k"])
	group, ok := entry["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "req-2", group["request_id"])
	assert.EqualValues(t, 1, group["n"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.True(t, logger.TenantID("").Equal(slog.Attr{}))
	assert.Equal(t, "school1", logger.TenantID("school1").Value.String())
	assert.Equal(t, "hi", logger.Locale("hi").Value.String())
	assert.Equal(t, "edge", logger.Component("edge").Value.String())

	g := logger.Group("tenant", logger.TenantID("school1"), logger.Locale("en"))
	assert.Equal(t, slog.KindGroup, g.Value.Kind())
	assert.Len(t, g.Value.Group(), 2)
}
