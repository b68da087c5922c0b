package ratelimit

import (
	"io"
	"time"
)

// Reader wraps an io.Reader with a bytes-per-second ceiling.
// It is owned by a single upload and is not safe for concurrent use.
type Reader struct {
	reader    io.Reader
	rateLimit int64 // bytes per second, <= 0 means unlimited
	window    time.Time
	bytesRead int64
	sleep     func(time.Duration)
	now       func() time.Time
}

// NewReader creates a new rate-limited reader
func NewReader(reader io.Reader, rateLimit int64) *Reader {
	return &Reader{
		reader:    reader,
		rateLimit: rateLimit,
		window:    time.Now(),
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Limit returns the configured limit in bytes per second
func (r *Reader) Limit() int64 {
	return r.rateLimit
}

// Read implements io.Reader. A single call never returns more than the
// budget left in the current one-second window.
func (r *Reader) Read(p []byte) (int, error) {
	if r.rateLimit <= 0 {
		return r.reader.Read(p)
	}

	now := r.now()
	if now.Sub(r.window) >= time.Second {
		r.window = now
		r.bytesRead = 0
	}

	available := r.rateLimit - r.bytesRead
	if available <= 0 {
		// Budget spent, wait for the window to roll over
		r.sleep(r.window.Add(time.Second).Sub(now))
		r.window = r.now()
		r.bytesRead = 0
		available = r.rateLimit
	}

	if int64(len(p)) > available {
		p = p[:available]
	}
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}
