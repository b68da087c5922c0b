package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewIOError("Failed to open source file", io.ErrUnexpectedEOF)
	assert.Equal(t, "[IO] Failed to open source file: unexpected EOF", err.Error())

	err = NewConfigError("projectName must be set", nil)
	assert.Equal(t, "[Configuration] projectName must be set", err.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("upload: %w", NewIOError("Failed to connect", cause))

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsType(err, ErrorTypeIO))
	assert.False(t, IsType(err, ErrorTypeConfig))
	assert.False(t, IsType(cause, ErrorTypeIO))
}

func TestNewParsingError(t *testing.T) {
	err := NewParsingError("io-limit", "fast", nil)
	assert.Equal(t, ErrorTypeParsing, err.Type)
	assert.Contains(t, err.Error(), "Failed to parse io-limit 'fast'")
}
