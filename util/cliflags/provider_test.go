package cliflags

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestProvider(t *testing.T) {
	var read map[string]any

	app := &cli.App{
		Name: "flagtest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost"},
			&cli.IntFlag{Name: "port", Value: 3000},
			&cli.BoolFlag{Name: "h2c"},
			&cli.DurationFlag{Name: "timeout", Value: time.Second},
		},
		Action: func(ctx *cli.Context) error {
			var err error
			read, err = Provider(ctx, ".", func(s string) string {
				return "http." + s
			}).Read()
			return err
		},
	}

	err := app.RunContext(context.Background(), []string{"flagtest", "--port", "8080", "--timeout", "3s"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"http": map[string]any{
			"port":    8080,
			"timeout": 3 * time.Second,
		},
	}, read)
}

func TestReadBytes(t *testing.T) {
	_, err := (&CLIFlags{}).ReadBytes()
	assert.Error(t, err)
}
