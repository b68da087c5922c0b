package version

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPrefersInjectedVersion(t *testing.T) {
	old := BuildVersion
	defer func() { BuildVersion = old }()

	BuildVersion = "v1.2.3"
	assert.Equal(t, "1.2.3", Get())
	assert.Contains(t, String(), "Google Code Upload v1.2.3")
}

func TestGetFallsBackWithoutVersionFile(t *testing.T) {
	old := BuildVersion
	defer func() { BuildVersion = old }()

	BuildVersion = "unknown"
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	assert.Equal(t, "0.0.0", Get())
}
