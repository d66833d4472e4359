package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name            string
		allowedOrigins  []string
		origin          string
		expectedHeader  string
		expectedStatus  int
		expectNextCalls bool
	}{
		{
			name:            "AllowedOrigin",
			allowedOrigins:  []string{"http://localhost:3000"},
			origin:          "http://localhost:3000",
			expectedHeader:  "http://localhost:3000",
			expectedStatus:  http.StatusOK,
			expectNextCalls: true,
		},
		{
			name:            "NotAllowedOrigin",
			allowedOrigins:  []string{"http://localhost:3000"},
			origin:          "https://evil.example.com",
			expectedStatus:  http.StatusForbidden,
			expectNextCalls: false,
		},
		{
			name:            "NoOriginHeader",
			allowedOrigins:  []string{"http://localhost:3000"},
			expectedStatus:  http.StatusOK,
			expectNextCalls: true,
		},
		{
			name:            "WildcardConfigured",
			allowedOrigins:  []string{"*"},
			origin:          "https://anything.example.com",
			expectedHeader:  "*",
			expectedStatus:  http.StatusOK,
			expectNextCalls: true,
		},
		{
			name:            "NothingConfiguredAllowsAll",
			origin:          "https://anything.example.com",
			expectedHeader:  "*",
			expectedStatus:  http.StatusOK,
			expectNextCalls: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req, err := http.NewRequest("GET", "/api/dashboard", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}

			rr := httptest.NewRecorder()
			Cors(tc.allowedOrigins)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNextCalls, nextCalled)
			assert.Equal(t, tc.expectedHeader, rr.Header().Get("Access-Control-Allow-Origin"))
			if tc.expectedHeader != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}
