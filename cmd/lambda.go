package cmd

import (
	"github.com/lambda-feedback/cidemo/app"
	"github.com/lambda-feedback/cidemo/app/lambda"
	"github.com/lambda-feedback/cidemo/util/conf"
	"github.com/lambda-feedback/cidemo/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	lambdaCmdDescription = `The lambda command starts the server as an AWS Lambda runtime
interface client, which allows the same routes to be invoked
through API Gateway or an Application Load Balancer, without
binding a local port.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				Value:    "API_GW_V2",
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	opts := parseOptions(ctx, log)
	opts.Cli = ctx

	cfg, err := conf.Parse[lambda.Config](opts)
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
