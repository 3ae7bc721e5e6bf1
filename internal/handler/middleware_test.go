package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	h := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/todos/", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, 2, fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		headers  map[string]string
		wantCode int
	}{
		{name: "safe method from other site", method: http.MethodGet, headers: map[string]string{"Sec-Fetch-Site": "cross-site"}, wantCode: http.StatusOK},
		{name: "same-origin post", method: http.MethodPost, headers: map[string]string{"Sec-Fetch-Site": "same-origin"}, wantCode: http.StatusOK},
		{name: "user-initiated post", method: http.MethodPost, headers: map[string]string{"Sec-Fetch-Site": "none"}, wantCode: http.StatusOK},
		{name: "cross-site post", method: http.MethodPost, headers: map[string]string{"Sec-Fetch-Site": "cross-site"}, wantCode: http.StatusForbidden},
		{name: "same-site post", method: http.MethodPost, headers: map[string]string{"Sec-Fetch-Site": "same-site"}, wantCode: http.StatusForbidden},
		{name: "matching origin", method: http.MethodPost, headers: map[string]string{"Origin": "http://example.com"}, wantCode: http.StatusOK},
		{name: "foreign origin", method: http.MethodPost, headers: map[string]string{"Origin": "https://evil.test"}, wantCode: http.StatusForbidden},
		{name: "foreign origin on delete", method: http.MethodDelete, headers: map[string]string{"Origin": "https://evil.test"}, wantCode: http.StatusForbidden},
		{name: "no browser headers", method: http.MethodPost, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := SameOrigin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			// httptest ставит Host = example.com
			req := httptest.NewRequest(tt.method, "/todos/1/delete/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, called)
		})
	}
}
