package ratelimit

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderUnlimited(t *testing.T) {
	data := strings.Repeat("x", 10000)
	r := NewReader(strings.NewReader(data), 0)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, string(got))
}

func TestReaderThrottles(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept time.Duration

	data := bytes.Repeat([]byte{'a'}, 250)
	r := NewReader(bytes.NewReader(data), 100)
	r.window = clock
	r.now = func() time.Time { return clock }
	r.sleep = func(d time.Duration) {
		slept += d
		clock = clock.Add(d)
	}

	buf := make([]byte, 1024)
	var out []byte
	for {
		n, err := r.Read(buf)
		assert.LessOrEqual(t, n, 100)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, data, out)
	assert.Equal(t, 2*time.Second, slept)
}

func TestReaderLimit(t *testing.T) {
	assert.Equal(t, int64(10), NewReader(strings.NewReader("abc"), 10).Limit())
}
