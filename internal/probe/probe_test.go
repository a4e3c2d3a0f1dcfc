package probe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/cidemo/handler"
	"github.com/lambda-feedback/cidemo/site"
	"github.com/lambda-feedback/cidemo/site/schema"
)

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := handler.NewSiteHandler(handler.SiteHandlerParams{
		Handler: site.NewPageHandler(site.HandlerParams{}),
		Log:     zaptest.NewLogger(t),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv
}

func newProber(t *testing.T, url string) *Prober {
	t.Helper()

	p, err := New(Config{URL: url}, zaptest.NewLogger(t))
	require.NoError(t, err)

	return p
}

func TestNew_InvalidURL(t *testing.T) {
	urls := []string{"", "localhost:3000", "ftp://localhost", "http://", "://bad"}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			_, err := New(Config{URL: url}, nil)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestCheck_Healthy(t *testing.T) {
	srv := newSiteServer(t)

	report, err := newProber(t, srv.URL).Check(context.Background())
	require.NoError(t, err)

	assert.True(t, report.OK())
	require.Len(t, report.Results, 2)
	assert.Equal(t, "/", report.Results[0].Route)
	assert.Equal(t, http.StatusOK, report.Results[0].StatusCode)
	assert.Equal(t, "/api/status", report.Results[1].Route)
	assert.Equal(t, http.StatusOK, report.Results[1].StatusCode)
}

func TestCheck_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	report, err := newProber(t, srv.URL).Check(context.Background())

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.False(t, report.OK())
	assert.Equal(t, http.StatusNotFound, report.Results[0].StatusCode)
}

func TestCheck_MissingMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == site.RouteStatus {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"status":"ok","timestamp":"2024-05-01T12:00:00.000Z"}`)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<h1>Welcome to CI/CD GitHub Actions Demo!</h1>")
	}))
	defer srv.Close()

	report, err := newProber(t, srv.URL).Check(context.Background())

	assert.ErrorIs(t, err, ErrMissingMarker)
	assert.Error(t, report.Results[0].Err)
	assert.NoError(t, report.Results[1].Err)
}

func TestCheck_InvalidStatusPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"degraded","timestamp":"now"}`)
	}))
	defer srv.Close()

	report, err := newProber(t, srv.URL).Check(context.Background())

	assert.ErrorIs(t, err, schema.ErrValidationFailed)
	assert.ErrorIs(t, err, ErrContentType)
	assert.Error(t, report.Results[1].Err)
}

func TestCheck_Unreachable(t *testing.T) {
	srv := newSiteServer(t)
	url := srv.URL
	srv.Close()

	report, err := newProber(t, url).Check(context.Background())

	assert.Error(t, err)
	assert.False(t, report.OK())
	assert.Zero(t, report.Results[0].StatusCode)
}
