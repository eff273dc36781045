package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/etaprogress/internal/logger"
)

func TestSetOutput_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(nil) })

	logger.Infof("task %d added", 1)
	logger.Warnf("slow")
	logger.Errorf("failed: %v", "boom")
	logger.Debugf("tick")

	out := buf.String()
	assert.Contains(t, out, "logger_test.go")
	assert.Contains(t, out, "[INFO] task 1 added")
	assert.Contains(t, out, "[WARNING] slow")
	assert.Contains(t, out, "[ERROR] failed: boom")
	assert.Contains(t, out, "[DEBUG] tick")
}

func TestDisabled_WritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.DebugEnabled = false
	t.Cleanup(func() { logger.SetOutput(nil) })

	logger.Infof("hidden")
	assert.Empty(t, buf.String())
}

func TestInitLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "etaprogress.log")

	require.NoError(t, logger.InitLogging(true, path))
	t.Cleanup(func() {
		logger.Close()
		logger.SetOutput(nil)
	})

	logger.Infof("written")
	logger.Close()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] written")
}

func TestInitLogging_NoDebugCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "etaprogress.log")

	require.NoError(t, logger.InitLogging(false, path))
	t.Cleanup(func() { logger.SetOutput(nil) })

	_, err := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "etaprogress.log", filepath.Base(logger.DefaultPath()))
}
