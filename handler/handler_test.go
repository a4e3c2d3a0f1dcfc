package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/cidemo/site"
)

// --- Mock handler ---
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, req site.Request) site.Response {
	args := m.Called(ctx, req)
	return args.Get(0).(site.Response)
}

func TestServeHTTP_MapsRequestAndResponse(t *testing.T) {
	mockHandler := new(MockHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/status?verbose=1", nil)
	w := httptest.NewRecorder()

	expectedResponse := site.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"status":"ok"}`),
	}

	mockHandler.On("Handle", mock.Anything, mock.MatchedBy(func(r site.Request) bool {
		return r.Path == "/api/status" && r.Method == http.MethodGet
	})).Return(expectedResponse)

	handler := &SiteHandler{
		handler: mockHandler,
		log:     zap.NewNop(),
	}

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Equal(t, `{"status":"ok"}`, string(body))
	mockHandler.AssertExpectations(t)
}

func TestServeHTTP_NormalizesMethod(t *testing.T) {
	mockHandler := new(MockHandler)

	req := httptest.NewRequest("post", "/", nil)
	w := httptest.NewRecorder()

	mockHandler.On("Handle", mock.Anything, mock.MatchedBy(func(r site.Request) bool {
		return r.Method == http.MethodPost
	})).Return(site.Response{StatusCode: http.StatusOK})

	handler := &SiteHandler{handler: mockHandler, log: zap.NewNop()}
	handler.ServeHTTP(w, req)

	mockHandler.AssertExpectations(t)
}

func TestServeHTTP_Routes(t *testing.T) {
	handler := NewSiteHandler(SiteHandlerParams{
		Handler: site.NewPageHandler(site.HandlerParams{}),
		Log:     zaptest.NewLogger(t),
	})

	srv := httptest.NewServer(handler)
	defer srv.Close()

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/status", http.StatusOK, "application/json"},
		{"/nonexistent", http.StatusNotFound, "text/plain; charset=utf-8"},
		{"/api/status/extra", http.StatusNotFound, "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.contentType, res.Header.Get("Content-Type"))
		})
	}
}

func TestServeHTTP_NotFoundBody(t *testing.T) {
	handler := NewSiteHandler(SiteHandlerParams{
		Handler: site.NewPageHandler(site.HandlerParams{}),
		Log:     zap.NewNop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "404 - Page Not Found", string(body))
}
