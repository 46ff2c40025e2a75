package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu   sync.Mutex
	logs []LogEntry
}

type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

func (m *MockLogger) add(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) { m.add("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields map[string]interface{})  { m.add("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields map[string]interface{})  { m.add("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields map[string]interface{}) { m.add("ERROR", msg, fields) }

func serve(t *testing.T, logger *MockLogger, status int, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seenID string
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(status)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seenID
}

func TestRequestLoggingMiddleware_LogsStartAndCompletion(t *testing.T) {
	logger := &MockLogger{}

	serve(t, logger, http.StatusOK, httptest.NewRequest("GET", "/suggest?q=mol", nil))

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "DEBUG", logger.logs[0].Level)
	assert.Equal(t, "q=mol", logger.logs[0].Fields["query"])

	done := logger.logs[1]
	assert.Equal(t, "INFO", done.Level)
	assert.Equal(t, "Request completed", done.Message)
	assert.Equal(t, "GET", done.Fields["method"])
	assert.Equal(t, "/suggest", done.Fields["path"])
	assert.Equal(t, http.StatusOK, done.Fields["status"])
	assert.Contains(t, done.Fields, "duration_ms")
}

func TestRequestLoggingMiddleware_ServerErrorLoggedAsError(t *testing.T) {
	logger := &MockLogger{}

	serve(t, logger, http.StatusServiceUnavailable, httptest.NewRequest("GET", "/ready", nil))

	last := logger.logs[len(logger.logs)-1]
	assert.Equal(t, "ERROR", last.Level)
	assert.Equal(t, http.StatusServiceUnavailable, last.Fields["status"])
}

func TestRequestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	logger := &MockLogger{}

	rec, seenID := serve(t, logger, http.StatusOK, httptest.NewRequest("GET", "/health", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, seenID, "handler sees the same ID through the context")
	assert.Equal(t, id, logger.logs[1].Fields["request_id"])
}

func TestRequestLoggingMiddleware_ReusesIncomingRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	rec, seenID := serve(t, &MockLogger{}, http.StatusOK, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seenID)
}

func TestResponseWriter_CapturesFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, rw.statusCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.Write([]byte("ok"))

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.True(t, rw.written)
}

type stubTransport struct {
	resp *http.Response
	err  error
}

func (s stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return s.resp, s.err
}

func TestLoggingRoundTripper(t *testing.T) {
	t.Run("success logs status at debug", func(t *testing.T) {
		logger := &MockLogger{}
		rt := &LoggingRoundTripper{
			Transport: stubTransport{resp: &http.Response{StatusCode: 200}},
			Logger:    logger,
		}
		req := httptest.NewRequest("POST", "http://engine:9200/catalog/_search", nil)
		req = req.WithContext(WithRequestID(req.Context(), "req-1"))

		resp, err := rt.RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		require.Len(t, logger.logs, 1)
		assert.Equal(t, "DEBUG", logger.logs[0].Level)
		assert.Equal(t, 200, logger.logs[0].Fields["status"])
		assert.Equal(t, "req-1", logger.logs[0].Fields["request_id"])
	})

	t.Run("transport error logs warning", func(t *testing.T) {
		logger := &MockLogger{}
		rt := &LoggingRoundTripper{
			Transport: stubTransport{err: errors.New("connection refused")},
			Logger:    logger,
		}

		_, err := rt.RoundTrip(httptest.NewRequest("GET", "http://engine:9200/", nil))

		assert.Error(t, err)
		require.Len(t, logger.logs, 1)
		assert.Equal(t, "WARN", logger.logs[0].Level)
		assert.Equal(t, "connection refused", logger.logs[0].Fields["error"])
		assert.NotContains(t, logger.logs[0].Fields, "request_id")
	})
}
