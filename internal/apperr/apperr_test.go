package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"conflict", Conflict("dup"), http.StatusBadRequest},
		{"auth", Auth("nope"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admin only"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"store", Store("boom", errors.New("db down")), http.StatusInternalServerError},
		{"unavailable", Unavailable("mongo", errors.New("timeout")), http.StatusServiceUnavailable},
		{"unknown", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestDetailHidesInternalsWithoutDebug(t *testing.T) {
	err := Store("Failed to create user", errors.New("pq: connection refused"))

	assert.Equal(t, "Internal server error", Detail(err, false))
	assert.Contains(t, Detail(err, true), "Failed to create user")
}

func TestDetailKeepsClientErrors(t *testing.T) {
	err := Validation("title is required")

	assert.Equal(t, "title is required", Detail(err, false))
	assert.Equal(t, "title is required", Detail(err, true))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Store("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(fmt.Errorf("outer: %w", err), cause))
}
