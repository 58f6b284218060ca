package common

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "debug", "json"))

	LogDebug("region selected", Fields{"region": "Kolkata"})
	LogError(errors.New("boom"), "prediction failed", Fields{"status": 500})

	out := buf.String()
	assert.Contains(t, out, `"msg":"region selected"`)
	assert.Contains(t, out, `"region":"Kolkata"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"status":500`)

	assert.Error(t, SetupLogger(&buf, "info", "xml"))
	assert.Error(t, SetupLogger(&buf, "loud", "json"))
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "loadmap", "loadmap.log")

	f, err := OpenLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestUserError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUserError("Could not reach the prediction service", cause)

	assert.Equal(t, "Could not reach the prediction service: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Could not reach the prediction service", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
