package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/adwski/go-metric"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var (
		buf = &bytes.Buffer{}
		id  = uuid.New()
		l   = NewLogger(zerolog.New(buf).Level(zerolog.TraceLevel))
	)

	l.Info("stats",
		[]any{"handled", metric.NewAtomic(7), "noop", metric.Noop{}, "id", id,
			"err", errors.New("boom"), "n", 3, 42, "skipped", "dangling"})

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "info", out["level"])
	assert.Equal(t, "stats", out["message"])
	assert.Equal(t, float64(7), out["handled"])
	assert.Equal(t, float64(0), out["noop"])
	assert.Equal(t, id.String(), out["id"])
	assert.Equal(t, "boom", out["err"])
	assert.Equal(t, float64(3), out["n"])
	assert.NotContains(t, out, "dangling")
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(zerolog.New(buf).Level(zerolog.InfoLevel))

	l.Trace("trace", nil)
	l.Debug("debug", nil)
	assert.Zero(t, buf.Len())

	l.Error("error", nil)
	assert.Contains(t, buf.String(), `"level":"error"`)
}
