package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncobase/relaypage/ctxutil"
	"github.com/ncobase/relaypage/logging/logger/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *Logger {
	return &Logger{Logger: logrus.New()}
}

func TestContextFields(t *testing.T) {
	l := newTestLogger()
	_, err := l.Init(&config.Config{Level: int(logrus.DebugLevel), Format: "json"})
	require.NoError(t, err)
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	l.Debugf(ctx, "resolved %d edges", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved 2 edges", entry["msg"])
	assert.Equal(t, "trace-1", entry[ctxutil.TraceIDKey])
	assert.Equal(t, "1.2.3", entry[VersionKey])
	assert.Equal(t, "debug", entry["level"])
}

func TestLevelFilters(t *testing.T) {
	l := newTestLogger()
	_, err := l.Init(&config.Config{Level: int(logrus.WarnLevel), Format: "text"})
	require.NoError(t, err)
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "relaypage.log")
	l := newTestLogger()
	cleanup, err := l.Init(&config.Config{Level: int(logrus.InfoLevel), Format: "text", Output: "file", OutputFile: path})
	require.NoError(t, err)

	l.Errorf(context.Background(), "store failed: %s", "timeout")
	cleanup()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "store failed: timeout"))

	_, err = newTestLogger().Init(&config.Config{Output: "file"})
	assert.Error(t, err)
}

func TestGetConfigDefaults(t *testing.T) {
	v := viper.New()
	v.Set("logger.format", "json")

	c := config.GetConfig(v)
	assert.Equal(t, 4, c.Level)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "stderr", c.Output)
}
