package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"DEBUG", LevelDebug, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleLoggerFiltersBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, LevelWarn, false)

	l.Debug("hidden %d", 1)
	l.Info("hidden too")
	l.Warn("skipped %s", "a.py")
	l.Error("boom")

	assert.Equal(t, "[WARN] skipped a.py\n[ERROR] boom\n", buf.String())
}

func TestConsoleLoggerKeepsPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, LevelInfo, false).Info("100% done")
	assert.Equal(t, "[INFO] 100% done\n", buf.String())
}

func TestConsoleLoggerColorizesTag(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, LevelInfo, true).Warn("careful")
	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.HasSuffix(out, "] careful\n"), "got %q", out)
}

func TestNilWriterAndNullLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewConsoleLogger(nil, LevelDebug, false).Error("dropped")
		OrNull(nil).Warn("dropped")
	})
	l := NewConsoleLogger(&bytes.Buffer{}, LevelInfo, false)
	assert.Same(t, l, OrNull(l))
}

func TestOpenFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "envfind.log")
	sink, err := OpenFileSink(DefaultFileSinkConfig(path))
	require.NoError(t, err)

	NewConsoleLogger(sink, LevelInfo, false).Info("written to %s", "file")
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] written to file\n", string(data))

	_, err = OpenFileSink(FileSinkConfig{})
	assert.Error(t, err)
}

func TestTee(t *testing.T) {
	var console, file bytes.Buffer
	l := Tee(NewConsoleLogger(&console, LevelWarn, false), nil, NewConsoleLogger(&file, LevelDebug, false))
	l.Debug("walking %s", "pkg")
	l.Warn("skipped %s", "bin.py")

	assert.Equal(t, "[WARN] skipped bin.py\n", console.String())
	assert.Equal(t, "[DEBUG] walking pkg\n[WARN] skipped bin.py\n", file.String())

	assert.IsType(t, NullLogger{}, Tee())
	single := NewConsoleLogger(&console, LevelInfo, false)
	assert.Same(t, single, Tee(nil, single))
}
