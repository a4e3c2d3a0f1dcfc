package site

import "net/http"

// Request represents an incoming request.
type Request struct {
	Path   string
	Method string
	Body   []byte
	Header http.Header
}

// Response represents an outgoing response.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// StatusPayload is the body served on the status route.
type StatusPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
