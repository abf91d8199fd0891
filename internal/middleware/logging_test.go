package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var handlerLogger *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerLogger = GetLogger(r.Context())
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{}}`))
	})
	handler := middleware.RequestID(LoggingMiddleware(logger)(next))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/study-sets/x", nil))

	require.NotNil(t, handlerLogger)
	assert.NotSame(t, slog.Default(), handlerLogger)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var completed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &completed))
	assert.Equal(t, "Request completed", completed["msg"])
	assert.Equal(t, "WARN", completed["level"])
	assert.EqualValues(t, http.StatusNotFound, completed["status"])
	assert.NotEmpty(t, completed["req_id"])
}

func TestFormatHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("X-User-ID", "alice")
	h.Add("Accept", "a")
	h.Add("Accept", "b")

	got := formatHeaders(h)

	assert.Equal(t, "[SENSITIVE]", got["Authorization"])
	assert.Equal(t, "alice", got["X-User-Id"])
	assert.Equal(t, "a, b", got["Accept"])
}

func TestGetLogger_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), GetLogger(req.Context()))
}
