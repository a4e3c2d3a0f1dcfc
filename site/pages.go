package site

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"
)

const (
	RouteWelcome = "/"
	RouteStatus  = "/api/status"
)

const (
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
)

// TimestampLayout renders UTC instants with millisecond precision
// and a literal Z suffix, e.g. 2024-05-01T12:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	StatusOK = "ok"

	NotFoundBody = "404 - Page Not Found"
)

// Markers that must appear on the welcome page.
var WelcomeMarkers = []string{
	"Welcome to CI/CD GitHub Actions Demo!",
	"Build Status: ✓ Success",
	"Deployment: ✓ Active",
}

//go:embed static/welcome.html
var welcomePage []byte

// Resolve maps a request path to its response. The result depends
// only on path, except for the timestamp of the status route.
func Resolve(path string, now time.Time) Response {
	switch path {
	case RouteWelcome:
		return newResponse(http.StatusOK, ContentTypeHTML, welcomePage)
	case RouteStatus:
		return newStatusResponse(now)
	default:
		return newResponse(http.StatusNotFound, "", []byte(NotFoundBody))
	}
}

// FormatTimestamp formats t for the status payload.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func newStatusResponse(now time.Time) Response {
	body, err := json.Marshal(StatusPayload{
		Status:    StatusOK,
		Timestamp: FormatTimestamp(now),
	})
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError}
	}

	return newResponse(http.StatusOK, ContentTypeJSON, body)
}

// newResponse creates a new response. An empty content type leaves
// the header unset so the transport applies its default.
func newResponse(status int, contentType string, body []byte) Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	// copy so callers cannot mutate the embedded page
	out := make([]byte, len(body))
	copy(out, body)

	return Response{
		StatusCode: status,
		Body:       out,
		Header:     header,
	}
}
