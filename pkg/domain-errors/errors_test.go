package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesAndMessages(t *testing.T) {
	err := New(CodeNotFound, "Knowledge not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.Equal(t, "Knowledge not found", MessageOf(err))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, CodeInternal, "server error")

	assert.True(t, HasCode(err, CodeInternal))
	assert.ErrorIs(t, err, cause, "wrapped causes stay reachable for logs")
	assert.Equal(t, "server error", MessageOf(err), "caller-safe message hides the cause")

	assert.NoError(t, Wrap(nil, CodeInternal, "no-op"))
}

func TestWrappedChainCarriesCode(t *testing.T) {
	inner := New(CodeConflict, "resource is published")
	outer := fmt.Errorf("transition: %w", inner)

	assert.True(t, HasCode(outer, CodeConflict))
	assert.Equal(t, "resource is published", MessageOf(outer))
}

func TestNonDomainErrorDefaults(t *testing.T) {
	err := errors.New("plain")
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "internal error", MessageOf(err))
	assert.False(t, HasCode(err, CodeInternal), "plain errors carry no code at all")
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeInvalidInput:       http.StatusBadRequest,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeForbidden:          http.StatusForbidden,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeInvariantViolation: http.StatusConflict,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeInternal:           http.StatusInternalServerError,
		Code("unknown"):        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
