package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lambda-feedback/cidemo/internal/probe"
	"github.com/lambda-feedback/cidemo/internal/shell"
	"github.com/lambda-feedback/cidemo/util/conf"
	"github.com/lambda-feedback/cidemo/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	probeCmdDescription = `The probe command checks a running deployment. It requests
the welcome page and the status endpoint, verifies the page
markers and validates the status payload against its schema.

The command exits with a non-zero exit code if any check
fails, so it can gate a deployment step in a pipeline.`
	probeCmd = &cli.Command{
		Name:        "probe",
		Usage:       "Check a running deployment.",
		Description: probeCmdDescription,
		Action:      probeAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "The base url of the deployment.",
				Value:    "http://localhost:3000",
				Category: "probe",
				EnvVars:  []string{"PROBE_URL"},
			},
			&cli.DurationFlag{
				Name:     "timeout",
				Aliases:  []string{"t"},
				Usage:    "The timeout of each request.",
				Value:    probe.DefaultTimeout,
				Category: "probe",
				EnvVars:  []string{"PROBE_TIMEOUT"},
			},
		},
	}
)

var probeCliMap = map[string]string{
	"url":     "probe.url",
	"timeout": "probe.timeout",
}

var probeDefaults = conf.MergeDefaults("probe", map[string]any{
	"url":     "http://localhost:3000",
	"timeout": probe.DefaultTimeout.String(),
})

type probeConfig struct {
	Probe probe.Config `conf:"probe"`
}

func probeAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	opts := parseOptions(ctx, log)
	opts.Cli = ctx
	opts.CliMap = probeCliMap
	opts.Defaults = probeDefaults

	cfg, err := conf.Parse[probeConfig](opts)
	if err != nil {
		return err
	}

	prober, err := probe.New(cfg.Probe, log.Named("probe"))
	if err != nil {
		return err
	}

	report, err := prober.Check(ctx.Context)

	printReport(ctx.App.Writer, cfg.Probe.URL, report)

	if err != nil {
		return shell.NewExitError(1)
	}

	return nil
}

func printReport(w io.Writer, url string, report probe.Report) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "probing %s\n", url)

	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Fprintf(w, "  %s %-12s %v\n", fail("FAIL"), result.Route, result.Err)
			continue
		}

		fmt.Fprintf(w, "  %s %-12s %d in %s\n", pass("PASS"), result.Route, result.StatusCode, result.Duration)
	}
}

func init() {
	rootApp.Commands = append(rootApp.Commands, probeCmd)
}
