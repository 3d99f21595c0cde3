package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Unauthorized("no identity"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{BadRequest("bad"), http.StatusBadRequest},
		{InvalidUploadStatus("wrong state"), http.StatusConflict},
		{StorageUnavailable(errors.New("down")), http.StatusServiceUnavailable},
		{IngestFailed("broken", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), string(tc.err.Code))
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, StorageUnavailable(errors.New("down")).Retryable())
	assert.False(t, IngestFailed("broken", nil).Retryable())
	assert.False(t, NotFound("gone").Retryable())
}

func TestAsError(t *testing.T) {
	typed := NotFound("gone")
	assert.Equal(t, typed, AsError(typed))

	wrapped := fmt.Errorf("outer: %w", typed)
	assert.Equal(t, typed, AsError(wrapped))

	raw := errors.New("driver exploded")
	got := AsError(raw)
	assert.Equal(t, CodeIngestFailed, got.Code)
	assert.ErrorIs(t, got, raw)
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("io failure")
	err := IngestFailed("reading staged bytes failed", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "ingest_failed")
	assert.Contains(t, err.Error(), "io failure")
}
