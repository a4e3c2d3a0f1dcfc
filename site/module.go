package site

import "go.uber.org/fx"

// Module provides the site handler.
func Module() fx.Option {
	return fx.Module(
		"site",

		// provide page handler
		fx.Provide(NewPageHandler),
	)
}
