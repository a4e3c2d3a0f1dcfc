package handler

import (
	"net/http"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("handler",
		fx.Provide(NewSiteHandler),
		fx.Provide(func(h *SiteHandler) http.Handler { return h }),
	)
}
