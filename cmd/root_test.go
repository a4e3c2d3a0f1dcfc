package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lambda-feedback/cidemo/handler"
	"github.com/lambda-feedback/cidemo/internal/shell"
	"github.com/lambda-feedback/cidemo/site"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 3, exitCode(shell.NewExitError(3)))
	assert.Equal(t, 2, exitCode(fmt.Errorf("wrapped: %w", shell.NewExitError(2))))
}

func TestIsAWSLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	assert.False(t, isAWSLambda())

	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")
	assert.True(t, isAWSLambda())
}

func TestProbeCommand(t *testing.T) {
	prev := rootApp.Writer
	rootApp.Writer = io.Discard
	t.Cleanup(func() { rootApp.Writer = prev })

	siteHandler := handler.NewSiteHandler(handler.SiteHandlerParams{
		Handler: site.NewPageHandler(site.HandlerParams{}),
		Log:     zap.NewNop(),
	})

	healthy := httptest.NewServer(siteHandler)
	defer healthy.Close()

	broken := httptest.NewServer(http.NotFoundHandler())
	defer broken.Close()

	args := func(url string) []string {
		return []string{appName, "--log-level", "error", "probe", "--url", url}
	}

	assert.Equal(t, 0, run(context.Background(), args(healthy.URL)))
	assert.Equal(t, 1, run(context.Background(), args(broken.URL)))
}
