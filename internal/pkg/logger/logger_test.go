package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_ContextFieldsAreCarried(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "donations", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithOrderID(context.Background(), "order-1")
	ctx = log.WithPackageID(ctx, "pkg-1")
	ctx = log.WithFields(ctx, map[string]any{"attempt": 2})

	log.Error(ctx, "mirror failed", errors.New("boom"))

	entry := decode(t, buf)
	assert.Equal(t, "donations", entry["service"])
	assert.Equal(t, "order-1", entry["order_id"])
	assert.Equal(t, "pkg-1", entry["package_id"])
	assert.EqualValues(t, 2, entry["attempt"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLogger_FieldsDoNotLeakIntoParentContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Output: buf})

	parent := context.Background()
	_ = log.WithActorID(parent, "actor-1")
	log.Info(parent, "hello")

	assert.NotContains(t, decode(t, buf), "actor_id")
}

func TestLogger_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: zerolog.WarnLevel, Output: buf})

	log.Info(context.Background(), "skipped")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error(context.Background(), "nothing", errors.New("x"))
	})
}
