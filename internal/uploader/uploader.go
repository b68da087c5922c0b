// Package uploader sends a local file to a Google Code style files endpoint
// as one authenticated multipart/form-data POST.
package uploader

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/format"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/ratelimit"
)

const (
	// Boundary separates the multipart parts
	Boundary = "CowMooCowMooCowCowCow"

	// UserAgent is sent with every upload
	UserAgent = "Google Code Upload Mojo 1.0"

	// UploadHost is the domain project endpoints live under
	UploadHost = "googlecode.com"

	// ChunkSize is the read size used when copying the file into the request
	ChunkSize = 8192

	defaultDialTimeout = 60 * time.Second
)

// Logger receives the debug lines of an upload
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// File is what the uploader needs from an opened source file
type File interface {
	io.ReadCloser
	Stat() (os.FileInfo, error)
}

// Opener opens the source file of an upload
type Opener func(path string) (File, error)

func openFile(path string) (File, error) {
	return os.Open(path)
}

// Uploader performs uploads. Each call owns its file handle and transport,
// so one Uploader may be reused for sequential uploads.
type Uploader struct {
	logger      Logger
	base        *http.Transport
	dialTimeout time.Duration
	open        Opener
}

// Option configures an Uploader
type Option func(*Uploader)

// WithLogger sets the logger that receives debug lines
func WithLogger(logger Logger) Option {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithTransport sets the transport cloned for every upload
func WithTransport(t *http.Transport) Option {
	return func(u *Uploader) {
		if t != nil {
			u.base = t
		}
	}
}

// WithDialTimeout bounds connection establishment
func WithDialTimeout(d time.Duration) Option {
	return func(u *Uploader) {
		if d > 0 {
			u.dialTimeout = d
		}
	}
}

// WithOpener replaces os.Open for the source file
func WithOpener(open Opener) Option {
	return func(u *Uploader) {
		if open != nil {
			u.open = open
		}
	}
}

// New creates an Uploader
func New(opts ...Option) *Uploader {
	u := &Uploader{
		logger:      nopLogger{},
		dialTimeout: defaultDialTimeout,
		open:        openFile,
		base: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends req.SourceFile to the resolved endpoint. When no target file
// name can be resolved the upload is skipped and Result.Skipped is set.
func (u *Uploader) Upload(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	target, source := resolveTarget(req)
	if target == "" {
		u.logger.Debugf("targetFileName is empty, skipping upload")
		return &Result{Skipped: true}, nil
	}

	endpoint, err := ResolveEndpoint(req.UploadURL, req.ProjectName)
	if err != nil {
		return nil, err
	}
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.NewConfigError("Invalid upload URL "+endpoint, err)
	}
	u.logger.Debugf("The upload URL is %s", endpoint)

	file, err := u.open(source)
	if err != nil {
		return nil, errors.NewIOError("Failed to open source file "+source, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.NewIOError("Failed to stat source file "+source, err)
	}
	if info.IsDir() {
		return nil, errors.NewIOError("Source file "+source+" is a directory", nil)
	}

	buffered := bufio.NewReaderSize(file, ChunkSize)
	// Files shorter than 512 bytes return what they have along with io.EOF
	head, _ := buffered.Peek(512)
	u.logger.Debugf("Source file %s (%s, %s)", source, format.Bytes(info.Size()), mimetype.Detect(head).String())

	var fileReader io.Reader = buffered
	if req.RateLimit > 0 {
		limited := ratelimit.NewReader(buffered, req.RateLimit)
		u.logger.Debugf("IO rate limit set to: %s/s", format.Bytes(limited.Limit()))
		fileReader = limited
	}

	body := newMultipartBody(req.Summary, req.Labels, target, fileReader, info.Size())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.NewConfigError("Failed to create upload request", err)
	}
	httpReq.ContentLength = body.Len()
	httpReq.Header.Set("Authorization", "Basic "+AuthToken(req.Username, req.Password))
	httpReq.Header.Set("Content-Type", "multipart/form-data; boundary="+Boundary)
	httpReq.Header.Set("User-Agent", UserAgent)

	transport := u.newTransport(endpointURL.Scheme, endpointURL.Hostname(), req.IgnoreHostnameVerification)
	defer transport.CloseIdleConnections()
	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	u.logger.Debugf("Attempting to connect (username is %s)...", req.Username)
	u.logger.Debugf("Sending request parameters...")
	if len(req.Labels) > 0 {
		u.logger.Debugf("Setting %d label(s)", len(req.Labels))
	}
	u.logger.Debugf("Sending file... %s", target)

	resp, err := client.Do(httpReq)
	if err != nil {
		u.logger.Debugf("Upload failed after %s sent: %v", format.Bytes(body.Sent()), err)
		return nil, errors.NewIOError("Upload to "+endpoint+" failed", err)
	}
	defer resp.Body.Close()

	u.logger.Debugf("Upload finished. Reading response.")
	u.logger.Debugf("HTTP Response Headers: %v", resp.Header)

	text, err := readASCII(resp.Body)
	if err != nil {
		return nil, errors.NewIOError("Failed to read upload response", err)
	}
	u.logger.Debugf("%s", text)

	result := &Result{
		Endpoint:       endpoint,
		TargetFileName: target,
		StatusCode:     resp.StatusCode,
		Status:         resp.Status,
		Header:         resp.Header,
		Body:           text,
		BytesSent:      body.Sent(),
		Duration:       time.Since(start),
	}
	if resp.StatusCode >= http.StatusBadRequest {
		u.logger.Debugf("Upload failed: server returned HTTP %s", resp.Status)
		return result, errors.NewIOError(fmt.Sprintf("Server returned HTTP %s for %s", resp.Status, endpoint), nil)
	}
	return result, nil
}

// AuthToken is the base64 Basic authentication token for user and password
func AuthToken(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// readASCII accumulates the response as ASCII text, replacing other bytes
// with U+FFFD
func readASCII(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b < utf8.RuneSelf {
				sb.WriteByte(b)
			} else {
				sb.WriteRune(utf8.RuneError)
			}
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
	}
}
