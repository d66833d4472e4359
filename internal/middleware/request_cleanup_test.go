package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitAndDrainRequest(t *testing.T) {
	var readErr error
	var read []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		read, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	handler := LimitAndDrainRequest(8)(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/add-workout", strings.NewReader("short")))
	assert.NoError(t, readErr)
	assert.Equal(t, "short", string(read))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/add-workout", strings.NewReader("way too long body")))
	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}
