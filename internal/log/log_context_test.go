package log

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogContextPaths(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name         string
		logDir       string
		logFileName  string
		expectedPath string
	}{
		{
			name:         "absolute path",
			logDir:       filepath.Join(tmpDir, "logdir"),
			logFileName:  filepath.Join(tmpDir, "custom", "run.log"),
			expectedPath: filepath.Join(tmpDir, "custom", "run.log"),
		},
		{
			name:         "relative path",
			logDir:       filepath.Join(tmpDir, "logdir"),
			logFileName:  "run.log",
			expectedPath: filepath.Join(tmpDir, "logdir", "run.log"),
		},
		{
			name:        "auto-generated name",
			logDir:      filepath.Join(tmpDir, "auto"),
			logFileName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewLogContext(tt.logDir, tt.logFileName)
			require.NoError(t, err)
			defer ctx.Close()

			actual := ctx.GetFileName()
			if tt.expectedPath != "" {
				assert.Equal(t, tt.expectedPath, actual)
			} else {
				assert.Equal(t, tt.logDir, filepath.Dir(actual))
				assert.True(t, strings.HasPrefix(filepath.Base(actual), logFilePrefix))
			}
			_, err = os.Stat(actual)
			assert.NoError(t, err)
		})
	}
}

func TestDebugfWritesFileAndVerboseConsole(t *testing.T) {
	ctx, err := NewLogContext(t.TempDir(), "run.log")
	require.NoError(t, err)

	var console bytes.Buffer
	ctx.SetConsole(&console)

	ctx.Debugf("quiet line %d", 1)
	assert.Empty(t, console.String())

	ctx.SetVerbose(true)
	ctx.Debugf("The upload URL is %s", "https://foo.googlecode.com/files")
	assert.Contains(t, console.String(), "[DEBUG] The upload URL is https://foo.googlecode.com/files")

	ctx.ForModule(ModuleCredentials).Debugf("resolved from %s", "env")
	assert.Contains(t, console.String(), "[DEBUG] resolved from env")
	ctx.MarkSuccess()
	ctx.Close()

	data, err := os.ReadFile(ctx.GetFileName())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[UPLOAD] quiet line 1")
	assert.Contains(t, content, "[UPLOAD] The upload URL is https://foo.googlecode.com/files")
	assert.Contains(t, content, "[CREDENTIALS] resolved from env")
	assert.Contains(t, content, "Log Ended (SUCCESS)")

	// Writing after Close is a no-op
	ctx.WriteLog(ModuleUpload, "late")
	ctx.Close()
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("%s2024010100%04d.log", logFilePrefix, i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), nil, 0644))

	cleanOldLogs(dir, keepLogs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, keepLogs)
	assert.Contains(t, names, "other.log")
	assert.NotContains(t, names, logFilePrefix+"20240101000000.log")
	assert.Contains(t, names, logFilePrefix+"20240101000011.log")
}

func TestExtractErrorSummary(t *testing.T) {
	content := strings.Join([]string{
		"[t] [UPLOAD] The upload URL is https://foo.googlecode.com/files",
		"[t] [UPLOAD] Sending request parameters...",
		"[t] [UPLOAD] Upload failed: dial tcp: connection refused",
	}, "\n")

	summary := ExtractErrorSummary(ModuleUpload, content)
	assert.Equal(t, "[t] [UPLOAD] Upload failed: dial tcp: connection refused", summary)

	// No keyword: last lines are returned
	summary = ExtractErrorSummary(ModuleCredentials, "[t] [CREDENTIALS] trying env")
	assert.Equal(t, "[t] [CREDENTIALS] trying env", summary)

	assert.Empty(t, ExtractErrorSummary(ModuleUpload, ""))
}
