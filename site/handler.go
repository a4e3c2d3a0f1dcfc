package site

import (
	"context"
	"time"

	"go.uber.org/fx"
)

// Clock returns the current time.
type Clock func() time.Time

// HandlerParams defines the dependencies for the page handler.
type HandlerParams struct {
	fx.In

	// Clock is optional and defaults to time.Now.
	Clock Clock `optional:"true"`
}

// Handler is the interface for handling site requests.
type Handler interface {
	Handle(ctx context.Context, request Request) Response
}

// PageHandler serves the fixed route table. It holds no mutable
// state and is safe for concurrent use.
type PageHandler struct {
	clock Clock
}

var _ Handler = (*PageHandler)(nil)

// NewPageHandler creates a new page handler.
func NewPageHandler(params HandlerParams) Handler {
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &PageHandler{clock: clock}
}

// Handle handles a site request. The method, header and body are
// ignored; only the path selects the response.
func (h *PageHandler) Handle(_ context.Context, req Request) Response {
	return Resolve(req.Path, h.clock())
}
