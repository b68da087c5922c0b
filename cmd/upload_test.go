package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/pascalleclercq/google-upload-plugin/internal/config"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	uploadFlags = config.Flags{}
	cfgFile, langFlag, verbose, quiet = "", "", false, false
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestUploadCommand(t *testing.T) {
	type received struct{ user, filename string }
	got := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rcv received
		rcv.user, _, _ = r.BasicAuth()
		mr, err := r.MultipartReader()
		if err == nil {
			for {
				p, err := mr.NextPart()
				if err != nil {
					break
				}
				if p.FormName() == "filename" {
					rcv.filename = p.FileName()
				}
				io.Copy(io.Discard, p)
			}
		}
		got <- rcv
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	dir := t.TempDir()
	source := filepath.Join(dir, "foo-1.0.zip")
	require.NoError(t, os.WriteFile(source, []byte("release"), 0644))

	err := execute(t, "upload", "-q",
		"--upload-url", srv.URL+"/files",
		"--file", source,
		"--summary", "Release 1.0",
		"--labels", "Featured",
		"--username", "alice",
		"--password", "s3cret",
		"--log-dir", filepath.Join(dir, "logs"),
		"--ai-diagnose", "off",
	)
	require.NoError(t, err)
	rcv := <-got
	assert.Equal(t, "alice", rcv.user)
	assert.Equal(t, "foo-1.0.zip", rcv.filename)
}

func TestUploadCommandSkipsUnresolvedClassifier(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	err := execute(t, "upload", "-q",
		"--upload-url", srv.URL,
		"--classifier", "javadoc",
		"--artifact", "sources=target/foo-sources.jar",
		"--log-dir", t.TempDir(),
		"--ai-diagnose", "off",
	)
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestUploadCommandMissingEndpoint(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "foo-1.0.zip")
	require.NoError(t, os.WriteFile(source, []byte("release"), 0644))

	err := execute(t, "upload", "-q",
		"--file", source,
		"--username", "alice",
		"--password", "s3cret",
		"--log-dir", filepath.Join(dir, "logs"),
		"--ai-diagnose", "off",
	)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestUploadCommandMissingEndpointWithoutCredentials(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "foo-1.0.zip")
	require.NoError(t, os.WriteFile(source, []byte("release"), 0644))
	t.Setenv("GOOGLECODE_USERNAME", "")
	t.Setenv("GOOGLECODE_PASSWORD", "")

	err := execute(t, "upload", "-q",
		"--file", source,
		"--log-dir", filepath.Join(dir, "logs"),
		"--ai-diagnose", "off",
	)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.False(t, errors.IsType(err, errors.ErrorTypeCredentials))
}

func TestSkipMessage(t *testing.T) {
	i18n.SetLang(language.English)
	assert.Equal(t, "Upload skipped: no target file name\n", skipMessage(""))
	assert.Equal(t, "Upload skipped: no target file resolved for classifier 'javadoc'\n", skipMessage("javadoc"))
}

func TestTargetFileNameHelpNamesDefault(t *testing.T) {
	usage := uploadCmd.Flags().Lookup("target-file-name").Usage
	assert.Contains(t, usage, "--classifier")
	assert.Contains(t, usage, "base name of --file")
}
