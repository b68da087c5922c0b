package uploader

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pascalleclercq/google-upload-plugin/internal/artifact"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
)

// Request describes one upload. It is not modified by Upload.
type Request struct {
	SourceFile     string // Local path of the file to send
	TargetFileName string // Name the file is given on the server
	Summary        string
	Labels         []string

	ProjectName string
	UploadURL   string // Used verbatim instead of the project-derived endpoint

	Username string
	Password string

	IgnoreHostnameVerification bool

	// Used to pick TargetFileName when it is empty
	Classifier string
	Artifacts  []artifact.Artifact

	RateLimit int64 // Bytes per second, 0 for unlimited
}

// Result reports what the server answered
type Result struct {
	Skipped        bool
	Endpoint       string
	TargetFileName string
	StatusCode     int
	Status         string
	Header         http.Header
	Body           string
	BytesSent      int64
	Duration       time.Duration
}

// ParseLabels splits a comma separated label list and trims each label.
// Trailing empty tokens are dropped; interior and whitespace-only tokens are
// kept as empty labels.
func ParseLabels(labels string) []string {
	parts := strings.Split(labels, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ResolveEndpoint returns uploadURL unchanged when set, otherwise the files
// endpoint of the named project.
func ResolveEndpoint(uploadURL, projectName string) (string, error) {
	if uploadURL != "" {
		u, err := url.Parse(uploadURL)
		if err != nil {
			return "", errors.NewConfigError("Invalid upload URL "+uploadURL, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", errors.NewConfigError("Upload URL must be an absolute http or https URL: "+uploadURL, nil)
		}
		return uploadURL, nil
	}
	if projectName == "" {
		return "", errors.NewConfigError("projectName must be set when no upload URL is given", nil)
	}
	u := url.URL{
		Scheme: "https",
		Host:   projectName + "." + UploadHost,
		Path:   "/files",
	}
	return u.String(), nil
}

// resolveTarget returns the target name and the file to read. An empty target
// means nothing can be uploaded.
func resolveTarget(req *Request) (target, source string) {
	target, source = req.TargetFileName, req.SourceFile
	if target != "" {
		return target, source
	}
	path, ok := artifact.ResolveTarget(req.Artifacts, req.Classifier)
	if !ok {
		return "", source
	}
	if source == "" {
		source = path
	}
	return path, source
}

// Target returns the file name the upload would use, empty when Upload would skip
func (r *Request) Target() string {
	target, _ := resolveTarget(r)
	return target
}
