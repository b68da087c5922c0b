package version

import (
	"os"
	"strings"
)

// Variables injected at compile time
var (
	BuildVersion = "unknown"
	BuildTime    = "unknown"
	GitCommit    = "unknown"
)

// Name is the tool name shown in the header and version output
const Name = "Google Code Upload"

// Info struct stores application version information
type Info struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Get gets version number, prefers compile-time injected version
func Get() string {
	if BuildVersion != "unknown" {
		return strings.TrimPrefix(BuildVersion, "v")
	}

	// fallback to reading from VERSION file
	data, err := os.ReadFile("VERSION")
	if err != nil {
		return "0.0.0"
	}
	return strings.TrimPrefix(strings.TrimSpace(string(data)), "v")
}

// GetInfo gets complete version information
func GetInfo() Info {
	return Info{
		Version:   Get(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
}

// String renders the one-line version banner
func String() string {
	info := GetInfo()
	return Name + " v" + info.Version + " (commit " + info.GitCommit + ", built " + info.BuildTime + ")"
}

// Print prints version information to stdout
func Print() {
	println(String())
}
