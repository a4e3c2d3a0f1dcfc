package handler

import (
	"net/http"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/cidemo/site"
)

type SiteHandlerParams struct {
	fx.In

	Handler site.Handler
	Log     *zap.Logger
}

func NewSiteHandler(params SiteHandlerParams) *SiteHandler {
	return &SiteHandler{
		handler: params.Handler,
		log:     params.Log,
	}
}

// SiteHandler adapts a site.Handler to net/http. It must be the
// server's root handler: a ServeMux in front of it would redirect
// unclean paths such as "//" instead of serving a 404.
type SiteHandler struct {
	handler site.Handler
	log     *zap.Logger
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request := site.Request{
		Path:   r.URL.Path,
		Method: strings.ToUpper(r.Method),
		Header: r.Header,
	}

	// Handle the request
	response := h.handler.Handle(r.Context(), request)

	// Map response headers
	for k, v := range response.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	// Write response headers and status code
	w.WriteHeader(response.StatusCode)

	// Write response body
	if _, err := w.Write(response.Body); err != nil {
		h.log.Debug("failed to write response", zap.Error(err))
	}
}
