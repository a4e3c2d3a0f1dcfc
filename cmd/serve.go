package cmd

import (
	"github.com/lambda-feedback/cidemo/app"
	"github.com/lambda-feedback/cidemo/app/standalone"
	"github.com/lambda-feedback/cidemo/util/conf"
	"github.com/lambda-feedback/cidemo/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command starts the http server and waits for
	requests. It serves the welcome page on /, the JSON status
	on /api/status and a 404 for every other path.

	The command will launch the http server and blocks indefin-
	itely, until it receives an interrupt or terminate signal.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start the http server and listen for requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    3000,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

// serveCliMap maps the http flags into the http config section.
var serveCliMap = map[string]string{
	"host": "http.host",
	"port": "http.port",
	"h2c":  "http.h2c",
}

func serveAction(ctx *cli.Context) error {
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
	opts.CliMap = serveCliMap

	cfg, err := conf.Parse[standalone.Config](opts)
	if err != nil {
		return err
	}

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
