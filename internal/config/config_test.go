package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pascalleclercq/google-upload-plugin/internal/artifact"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "upload.json", `{
		"projectName": "foo",
		"fileName": "dist/foo-1.0.zip",
		"summary": "Release 1.0",
		"labels": "Featured, Type-Archive",
		"ignoreSslCertificateHostname": true,
		"artifacts": [{"path": "target/foo-sources.jar", "classifier": "sources"}]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "foo", cfg.ProjectName)
	assert.Equal(t, "dist/foo-1.0.zip", cfg.FileName)
	assert.Equal(t, "Featured, Type-Archive", cfg.Labels)
	assert.True(t, cfg.IgnoreSSLCertificateHostname)
	assert.Equal(t, []artifact.Artifact{{Path: "target/foo-sources.jar", Classifier: "sources"}}, cfg.Artifacts)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	path := writeFile(t, "broken.json", `{"projectName": `)
	_, err = LoadConfig(path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{Timeout: 7200}
	cfg.SetDefaults()

	assert.Equal(t, DefaultServerID, cfg.ServerID)
	assert.Equal(t, DefaultEnvPrefix, cfg.EnvPrefix)
	assert.Equal(t, MaxTimeout, cfg.Timeout)
	assert.NotEmpty(t, cfg.LogDir)

	cfg = &Config{}
	cfg.SetDefaults()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestMergeFlagsPrecedence(t *testing.T) {
	cfg := &Config{
		ProjectName: "from-file",
		Summary:     "file summary",
		Labels:      "a,b",
		IOLimit:     1024,
	}
	flags := &Flags{
		ProjectName:    "from-flag",
		Artifacts:      []string{"javadoc=target/foo-javadoc.jar"},
		IOLimitStr:     "2MB/s",
		AIDiagnoseFlag: "off",
	}

	merged, effective, err := MergeFlags(cfg, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", merged.ProjectName)
	assert.Equal(t, "file summary", merged.Summary)
	assert.Equal(t, "a,b", merged.Labels)
	assert.Equal(t, int64(2*1024*1024), merged.IOLimit)
	assert.Equal(t, []artifact.Artifact{{Path: "target/foo-javadoc.jar", Classifier: "javadoc"}}, merged.Artifacts)
	assert.Equal(t, DefaultServerID, merged.ServerID)
	assert.Equal(t, "off", effective.AIDiagnoseFlag)
}

func TestMergeFlagsInvalidValues(t *testing.T) {
	_, _, err := MergeFlags(&Config{}, &Flags{IOLimitStr: "fast"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))

	_, _, err = MergeFlags(&Config{}, &Flags{Artifacts: []string{"no-separator"}})
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}

func TestGetRateLimit(t *testing.T) {
	assert.Equal(t, int64(0), (&Config{IOLimit: -1}).GetRateLimit())
	assert.Equal(t, int64(0), (&Config{}).GetRateLimit())
	assert.Equal(t, int64(4096), (&Config{IOLimit: 4096}).GetRateLimit())
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, "upload.env", "GOOGLECODE_TEST_USERNAME=alice\n")
	os.Unsetenv("GOOGLECODE_TEST_USERNAME")
	defer os.Unsetenv("GOOGLECODE_TEST_USERNAME")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "alice", os.Getenv("GOOGLECODE_TEST_USERNAME"))

	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
