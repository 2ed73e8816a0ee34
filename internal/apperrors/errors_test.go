package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if CodeOf(NotFound("employee", "e1")) != ErrCodeNotFound {
		t.Fatal("expected NOT_FOUND code")
	}
	if CodeOf(errors.New("plain")) != ErrCodeInternal {
		t.Fatal("uncoded errors must map to INTERNAL")
	}

	wrapped := fmt.Errorf("context: %w", Conflict("busy"))
	if CodeOf(wrapped) != ErrCodeConflict {
		t.Fatal("code must survive wrapping")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("band", "unknown"), http.StatusBadRequest},
		{NotFound("request", "r1"), http.StatusNotFound},
		{Conflict("open request exists"), http.StatusConflict},
		{Unauthorized("wrong stage"), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, expected %d", tc.err, got, tc.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(cause, ErrCodeInternal, "failed to load request")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause must be reachable via errors.Is")
	}
}
