package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lambda-feedback/cidemo/config"
	"github.com/lambda-feedback/cidemo/internal/shell"
	"github.com/lambda-feedback/cidemo/util/conf"
	"github.com/lambda-feedback/cidemo/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "cidemo"
	appUsage = `A demo web server for continuous integration and deployment
pipelines, serving a welcome page and a JSON status endpoint.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			// config sources
			&cli.PathFlag{
				Name:     "config",
				Usage:    "a json file to read the configuration from.",
				Category: "config",
				EnvVars:  []string{"CIDEMO_CONFIG"},
			},
			&cli.PathFlag{
				Name:     "env-file",
				Usage:    "a dotenv file to read CIDEMO_ prefixed variables from.",
				Category: "config",
				EnvVars:  []string{"CIDEMO_ENV_FILE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, level, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config using defaults, files and env
			cfg, err := conf.Parse[config.Config](parseOptions(ctx, log))
			if err != nil {
				return err
			}

			// the log-level flag takes precedence over the config
			if !ctx.IsSet("log-level") {
				if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
					level.SetLevel(lvl.Level())
				}
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the app with the process arguments and returns
// the exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	return exitCode(rootApp.RunContext(ctx, args))
}

// exitCode maps the error returned by the app to a process exit code.
func exitCode(err error) int {
	// if app exited without error, return
	if err == nil {
		return 0
	}

	fmt.Printf("exit error: %s\n", err.Error())

	// if app exited with ExitError, exit with given exit code
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	// otherwise, exit with exit code 1
	return 1
}

// parseOptions returns the config sources selected on the command line.
func parseOptions(ctx *cli.Context, log *zap.Logger) conf.ParseOptions {
	return conf.ParseOptions{
		Defaults:    config.DefaultConfig,
		EnvPrefix:   config.EnvPrefix,
		FileName:    ctx.Path("config"),
		EnvFileName: ctx.Path("env-file"),
		Log:         log,
	}
}

func createLogger(ctx *cli.Context) (*zap.Logger, zap.AtomicLevel, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	log, err := config.Build()
	if err != nil {
		return nil, level, err
	}

	return log, level, nil
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
