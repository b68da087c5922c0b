// Package artifact describes the build outputs an upload can pick its target name from.
package artifact

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
)

// Artifact is one file produced by a build, qualified by an optional classifier
type Artifact struct {
	Path       string `json:"path"`
	Classifier string `json:"classifier"`
}

// HasClassifier reports whether the artifact carries a classifier
func (a Artifact) HasClassifier() bool {
	return a.Classifier != ""
}

// ParseSpec parses a "classifier=path" command line value
func ParseSpec(spec string) (Artifact, error) {
	classifier, path, ok := strings.Cut(spec, "=")
	classifier = strings.TrimSpace(classifier)
	path = strings.TrimSpace(path)
	if !ok || classifier == "" || path == "" {
		return Artifact{}, errors.NewParsingError("artifact", spec, fmt.Errorf("expected classifier=path"))
	}
	return Artifact{Path: path, Classifier: classifier}, nil
}

// ResolveTarget returns the absolute path of the artifact carrying the given
// classifier. When several artifacts match, the last one wins.
func ResolveTarget(artifacts []Artifact, classifier string) (string, bool) {
	if classifier == "" {
		return "", false
	}

	var match string
	found := false
	for _, a := range artifacts {
		if !a.HasClassifier() || a.Classifier != classifier {
			continue
		}
		match = a.Path
		found = true
	}
	if !found {
		return "", false
	}

	abs, err := filepath.Abs(match)
	if err != nil {
		return match, true
	}
	return abs, true
}
