package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAPIError_DetailShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "drf detail",
			status: http.StatusBadRequest,
			body:   `{"detail": "Invalid credentials"}`,
			want:   "Invalid credentials",
		},
		{
			name:   "custom handler message",
			status: http.StatusNotFound,
			body:   `{"error": "Not Found", "message": "The requested resource was not found."}`,
			want:   "The requested resource was not found.",
		},
		{
			name:   "error only",
			status: http.StatusUnauthorized,
			body:   `{"error": "Unauthorized"}`,
			want:   "Unauthorized",
		},
		{
			name:   "field validation map sorted by field",
			status: http.StatusBadRequest,
			body:   `{"username": ["This field is required."], "email": ["Enter a valid email address."]}`,
			want:   "email: Enter a valid email address.; username: This field is required.",
		},
		{
			name:   "empty body falls back to status text",
			status: http.StatusBadGateway,
			body:   "",
			want:   "Bad Gateway",
		},
		{
			name:   "non-json body falls back to status text",
			status: http.StatusInternalServerError,
			body:   "<html>oops</html>",
			want:   "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			require.Equal(t, tt.status, err.Status)
			require.Equal(t, tt.want, err.Detail)
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	require.True(t, IsUnauthorized(&APIError{Status: http.StatusUnauthorized}))
	require.False(t, IsUnauthorized(&APIError{Status: http.StatusForbidden}))
	require.False(t, IsUnauthorized(nil))
}
