package app

import (
	"github.com/lambda-feedback/cidemo/config"
	"github.com/lambda-feedback/cidemo/internal/shell"
	"github.com/lambda-feedback/cidemo/site"
	"github.com/lambda-feedback/cidemo/util/conf"
	"github.com/lambda-feedback/cidemo/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide site handler
		site.Module(),
	)

	return shell.New(log, sharedModule), nil
}
