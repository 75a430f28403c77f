package svcerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"wayfare/services/svcerr"

	"github.com/stretchr/testify/require"
)

// TestCodeOf verifies codes survive wrapping and plain errors carry none.
func TestCodeOf(t *testing.T) {
	err := svcerr.Conflict("window taken")
	require.Equal(t, svcerr.CodeConflict, svcerr.CodeOf(err))

	wrapped := fmt.Errorf("responding to booking: %w", err)
	require.Equal(t, svcerr.CodeConflict, svcerr.CodeOf(wrapped))

	require.Equal(t, svcerr.Code(""), svcerr.CodeOf(errors.New("plain")))
	require.Equal(t, svcerr.Code(""), svcerr.CodeOf(nil))
}

// TestHTTPStatus verifies the code-to-status mapping the handlers rely on.
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{svcerr.Validation("bad input"), http.StatusBadRequest},
		{svcerr.Unauthorized("not yours"), http.StatusUnauthorized},
		{svcerr.NotEligible("below threshold"), http.StatusForbidden},
		{svcerr.NotFound("missing"), http.StatusNotFound},
		{svcerr.Conflict("window taken"), http.StatusConflict},
		{svcerr.InvalidState("already canceled"), http.StatusConflict},
		{svcerr.AlreadyExists("profile exists"), http.StatusConflict},
		{svcerr.DuplicateReview("already reviewed"), http.StatusConflict},
		{svcerr.HasActiveBookings("still booked"), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, svcerr.HTTPStatus(tt.err), "for %v", tt.err)
	}
}
