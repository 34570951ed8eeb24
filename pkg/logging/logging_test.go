package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	chk := require.New(t)

	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf}).With(String("run", "tandem"))
	l.Info(context.Background(), "simulation finished", Int64("draws", 100000), Float("clock", 12.5))

	var entry map[string]any
	chk.NoError(json.Unmarshal(buf.Bytes(), &entry))
	chk.Equal("simulation finished", entry["msg"])
	chk.Equal("tandem", entry["run"])
	chk.EqualValues(100000, entry["draws"])
	chk.EqualValues(12.5, entry["clock"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})
	l.Info(context.Background(), "hidden")
	l.Debug(context.Background(), "hidden")
	require.Zero(t, buf.Len())
	l.Warn(context.Background(), "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestContextRoundTrip(t *testing.T) {
	chk := require.New(t)

	chk.Equal(Noop(), FromContext(context.Background()))

	l := New(Config{Output: &bytes.Buffer{}})
	ctx := ContextWithLogger(context.Background(), l)
	chk.Same(l, FromContext(ctx))
}
