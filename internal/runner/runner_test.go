package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/loadingbar"
)

func TestRun_WritesFrames(t *testing.T) {
	var stdout, stderr bytes.Buffer

	result, err := Run(context.Background(), Options{Steps: 4, Width: 10}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, Result{Frames: 5}, result)

	lines := strings.Split(stdout.String(), "\n")
	// five frames, the final newline, and the empty tail after it
	require.Len(t, lines, 7)
	assert.Equal(t, []string{
		"⟳ [▒▒▒▒▒▒]" + loadingbar.LineEnd,
		"⟳ [█▒▒▒▒▒]" + loadingbar.LineEnd,
		"⟳ [███▒▒▒]" + loadingbar.LineEnd,
		"⟳ [████▒▒]" + loadingbar.LineEnd,
		"✓ [██████]" + loadingbar.LineEnd,
		"",
		"",
	}, lines)
	assert.Empty(t, stderr.String())
}

func TestRun_RTL(t *testing.T) {
	var stdout bytes.Buffer

	_, err := Run(context.Background(), Options{Steps: 1, RTL: true, Width: 5}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "[0%]⟳ "+loadingbar.LineEnd+"\n[100%]✓ "+loadingbar.LineEnd+"\n\n", stdout.String())
}

func TestRun_DynamicWidthUsesQuery(t *testing.T) {
	var stdout bytes.Buffer

	_, err := Run(context.Background(), Options{Steps: 1, Query: loadingbar.FixedWidth(8)}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout.String(), "⟳ [▒▒▒▒]"+loadingbar.LineEnd+"\n"))
}

func TestRun_WaitsBetweenFrames(t *testing.T) {
	var stdout bytes.Buffer

	start := time.Now()
	result, err := Run(context.Background(), Options{Steps: 3, Width: 10, Interval: 10 * time.Millisecond}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Frames)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRun_RejectsNonPositiveSteps(t *testing.T) {
	for _, steps := range []int{0, -1} {
		_, err := Run(context.Background(), Options{Steps: steps}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "steps must be positive")
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	result, err := Run(ctx, Options{Steps: 3, Width: 10}, &stdout, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, IsInterrupt(err))
	assert.Equal(t, Result{Interrupted: true}, result)
	assert.Equal(t, "\n", stdout.String())
}

// cancelWriter cancels its context after the first write.
type cancelWriter struct {
	bytes.Buffer
	cancel context.CancelFunc
}

func (w *cancelWriter) Write(p []byte) (int, error) {
	defer w.cancel()
	return w.Buffer.Write(p)
}

func TestRun_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout := &cancelWriter{cancel: cancel}
	result, err := Run(ctx, Options{Steps: 10, Width: 10, Interval: time.Hour}, stdout, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, Result{Frames: 1, Interrupted: true}, result)
	assert.Equal(t, "⟳ [▒▒▒▒▒▒]"+loadingbar.LineEnd+"\n\n", stdout.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRun_WriteError(t *testing.T) {
	_, err := Run(context.Background(), Options{Steps: 2, Width: 10}, failingWriter{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 0")
	assert.Contains(t, err.Error(), "disk full")
}

func TestRun_LogsFrames(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := Run(context.Background(), Options{Steps: 2, Width: 10, Log: logger}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 4)
	assert.Equal(t, "starting animation", entries[0].Message)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)

	for i, entry := range entries[1:] {
		assert.Equal(t, "rendering frame", entry.Message)
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, i, entry.Data["step"])
	}
	assert.Equal(t, float32(1), entries[3].Data["progress"])
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
