package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"eventsource-adapter/sink"
)

func run(t *testing.T, logger *zap.Logger, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	if logger == nil {
		logger = zap.NewNop()
	}

	err := execute(&app{out: &out, logger: logger}, args)

	return out.String(), err
}

type syncCounter struct {
	zapcore.Core
	synced int
}

func (c *syncCounter) Sync() error {
	c.synced++
	return c.Core.Sync()
}

func TestExecute_SyncsLogger(t *testing.T) {
	core := &syncCounter{Core: zapcore.NewNopCore()}

	_, err := run(t, zap.New(core), "check", "testdata/hosting.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, core.synced)

	_, err = run(t, zap.New(core), "check", "testdata/broken.yaml")
	require.Error(t, err)
	assert.Equal(t, 2, core.synced, "logger is flushed on failure too")
}

func TestCheck(t *testing.T) {
	out, err := run(t, nil, "check", "testdata/hosting.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "info: ")
	assert.Contains(t, out, "sink_fallback")
	assert.Contains(t, out, "Hosting: 2 event(s) OK")
}

func TestCheck_FailOnFallback(t *testing.T) {
	out, err := run(t, nil, "check", "--fail-on-fallback", "testdata/hosting.yaml")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "sink_fallback")
	assert.NotContains(t, out, "OK")
}

func TestCheck_InvalidFile(t *testing.T) {
	out, err := run(t, nil, "check", "testdata/broken.yaml")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "missing_event_id")
	assert.Contains(t, out, "unknown_type")
	assert.Contains(t, out, "did you mean string")
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := run(t, nil, "check", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestCheck_ConflictPolicy(t *testing.T) {
	t.Run("default rejects", func(t *testing.T) {
		out, err := run(t, nil, "check", "testdata/conflict.yaml")
		require.ErrorIs(t, err, errCheckFailed)
		assert.Contains(t, out, "parameter_conflict")
	})

	t.Run("flag", func(t *testing.T) {
		out, err := run(t, nil, "--conflict-policy", "last-wins", "check", "testdata/conflict.yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "parameter_overwritten")
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("EVENTSOURCE_CONFLICT_POLICY", "last-wins")

		_, err := run(t, nil, "check", "testdata/conflict.yaml")
		require.NoError(t, err)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("conflict-policy: last-wins\n"), 0o600))

		_, err := run(t, nil, "--config", path, "check", "testdata/conflict.yaml")
		require.NoError(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := run(t, nil, "--conflict-policy", "first-wins", "check", "testdata/conflict.yaml")
		require.ErrorContains(t, err, "first-wins")
	})
}

func TestDescribe(t *testing.T) {
	out, err := run(t, nil, "describe", "testdata/hosting.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "unit:   Generated_EventSource_Hosting_1")
	assert.Contains(t, out, "guid:   "+sink.GUIDFromName("Hosting").String())
	assert.Contains(t, out, "Event_BeginRequest")
	assert.Contains(t, out, "WriteEventStringInt")
	assert.Contains(t, out, "WriteEventArgs(id, ...any)")
	assert.Contains(t, out, "Notification_EndRequest")
	assert.Contains(t, out, "Microsoft.AspNet.Hosting.EndRequest")
	assert.Contains(t, out, "(path string, elapsed time.Duration)")
	assert.NotContains(t, out, "plan.EventPlan")
}

func TestDescribe_Dump(t *testing.T) {
	out, err := run(t, nil, "describe", "--dump", "testdata/hosting.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "plan.EventPlan")
}

func TestEmit(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	out, err := run(t, zap.New(core), "emit", "testdata/hosting.yaml", "BeginRequest", "path=/home", "status=200")
	require.NoError(t, err)
	assert.Equal(t, "Hosting/1 [/home 200]\n", out)

	written := logs.FilterMessage("Event written").All()
	require.Len(t, written, 1)
	assert.Equal(t, int64(1), written[0].ContextMap()["event_id"])
}

func TestEmit_Fallback(t *testing.T) {
	out, err := run(t, nil, "emit", "testdata/hosting.yaml",
		"Microsoft.AspNet.Hosting.EndRequest", "path=/home", "elapsed=1.5s")
	require.NoError(t, err)
	assert.Equal(t, "Hosting/2 [5 1.5s]\n", out)
}

func TestEmit_MissingValuesAreZero(t *testing.T) {
	out, err := run(t, nil, "emit", "testdata/hosting.yaml", "BeginRequest")
	require.NoError(t, err)
	assert.Equal(t, "Hosting/1 [ 0]\n", out)
}

func TestEmit_Errors(t *testing.T) {
	_, err := run(t, nil, "emit", "testdata/hosting.yaml", "Unknown")
	require.ErrorIs(t, err, errNoSubscription)

	_, err = run(t, nil, "emit", "testdata/hosting.yaml", "BeginRequest", "path")
	require.ErrorIs(t, err, errBadValue)

	_, err = run(t, nil, "emit", "testdata/hosting.yaml", "BeginRequest", "status=many")
	require.Error(t, err)

	_, err = run(t, nil, "emit", "testdata/hosting.yaml")
	require.Error(t, err)
}
