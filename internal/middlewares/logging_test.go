package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nimish-23/user-account-service/internal/middlewares"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core).Sugar()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	middlewares.LoggingMiddleware(log)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "request", entries[0].Message)
	assert.Equal(t, "response", entries[1].Message)

	requestFields := entries[0].ContextMap()
	assert.Equal(t, http.MethodGet, requestFields["method"])
	assert.Equal(t, "/users/me", requestFields["uri"])

	responseFields := entries[1].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), responseFields["status"])
	assert.Equal(t, "15B", responseFields["response_size"])

	// Both entries carry the same request id
	assert.Equal(t, requestFields["request_id"], responseFields["request_id"])
}
