package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeConfig,
				Message: "invalid log level",
			},
			wantMessage: "[CONFIG] invalid log level",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeTransport,
				Message: "cannot open assembly summary",
				Cause:   io.ErrUnexpectedEOF,
			},
			wantMessage: "[TRANSPORT] cannot open assembly summary: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("gzip: invalid header")
	err := NewTransportError("decompress source", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "write report"}
	err.WithContext("path", "/tmp/out.txt").WithContext("rows", 3)

	require.NotNil(t, err.Context)
	assert.Equal(t, "/tmp/out.txt", err.Context["path"])
	assert.Equal(t, 3, err.Context["rows"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *AppError
		want ErrorType
	}{
		{"config", NewConfigError("bad config", cause), ErrTypeConfig},
		{"transport", NewTransportError("bad source", cause), ErrTypeTransport},
		{"parsing", NewParsingError("bad row", cause), ErrTypeParsing},
		{"storage", NewStorageError("bad disk", cause), ErrTypeStorage},
		{"validation", NewValidationError("bad value", cause), ErrTypeValidation},
		{"not found", NewNotFoundError("assembly summary"), ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
			assert.NotNil(t, tt.err.Context)
		})
	}

	assert.Equal(t, "[NOT_FOUND] assembly summary not found", NewNotFoundError("assembly summary").Error())
}

func TestIsType(t *testing.T) {
	inner := NewTransportError("fetch", io.EOF)
	outer := NewStorageError("persist", inner)
	wrapped := fmt.Errorf("run: %w", outer)

	assert.True(t, IsType(wrapped, ErrTypeStorage))
	assert.True(t, IsType(wrapped, ErrTypeTransport))
	assert.False(t, IsType(wrapped, ErrTypeConfig))
	assert.False(t, IsType(io.EOF, ErrTypeTransport))
	assert.False(t, IsType(nil, ErrTypeTransport))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeConfig, TypeOf(fmt.Errorf("load: %w", NewConfigError("x", nil))))
	assert.Equal(t, ErrorType(""), TypeOf(io.EOF))
}
