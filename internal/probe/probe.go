// Package probe checks a running deployment of the demo server, the
// way a pipeline verifies a deploy before marking it active.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lambda-feedback/cidemo/site"
	"github.com/lambda-feedback/cidemo/site/schema"
)

var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingMarker    = errors.New("missing marker")
	ErrContentType      = errors.New("unexpected content type")
)

// DefaultTimeout bounds each probe request.
const DefaultTimeout = 5 * time.Second

type Config struct {
	// URL is the base url of the deployment, e.g. http://localhost:3000.
	URL string `conf:"url"`

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration `conf:"timeout"`
}

// Result is the outcome of probing a single route.
type Result struct {
	Route      string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Report collects the results of a probe run.
type Report struct {
	Results []Result
}

// OK reports whether every route passed.
func (r Report) OK() bool {
	for _, result := range r.Results {
		if result.Err != nil {
			return false
		}
	}

	return true
}

// Err joins the errors of all failed routes.
func (r Report) Err() error {
	var errs []error
	for _, result := range r.Results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Route, result.Err))
		}
	}

	return errors.Join(errs...)
}

type Prober struct {
	base   *url.URL
	client *http.Client
	schema *schema.Schema
	log    *zap.Logger
}

func New(config Config, log *zap.Logger) (*Prober, error) {
	base, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, config.URL)
	}

	statusSchema, err := schema.NewStatusSchema()
	if err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Prober{
		base:   base,
		client: &http.Client{Timeout: timeout},
		schema: statusSchema,
		log:    log,
	}, nil
}

// Check probes the welcome page and the status route. The returned
// error is non-nil if any route failed.
func (p *Prober) Check(ctx context.Context) (Report, error) {
	report := Report{
		Results: []Result{
			p.probe(ctx, site.RouteWelcome, p.checkWelcome),
			p.probe(ctx, site.RouteStatus, p.checkStatus),
		},
	}

	return report, report.Err()
}

func (p *Prober) probe(
	ctx context.Context,
	route string,
	check func(*http.Response, []byte) error,
) Result {
	log := p.log.With(zap.String("route", route))

	start := time.Now()
	res, body, err := p.get(ctx, route)
	result := Result{
		Route:    route,
		Duration: time.Since(start),
	}

	if err != nil {
		log.Debug("request failed", zap.Error(err))
		result.Err = err
		return result
	}

	result.StatusCode = res.StatusCode

	if err := check(res, body); err != nil {
		log.Debug("check failed", zap.Error(err))
		result.Err = err
		return result
	}

	log.Debug("check passed", zap.Duration("duration", result.Duration))

	return result
}

func (p *Prober) get(ctx context.Context, route string) (*http.Response, []byte, error) {
	target := p.base.JoinPath(route)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}

	return res, body, nil
}

func (p *Prober) checkWelcome(res *http.Response, body []byte) error {
	if err := expect(res, site.ContentTypeHTML); err != nil {
		return err
	}

	for _, marker := range site.WelcomeMarkers {
		if !strings.Contains(string(body), marker) {
			return fmt.Errorf("%w: %q", ErrMissingMarker, marker)
		}
	}

	return nil
}

func (p *Prober) checkStatus(res *http.Response, body []byte) error {
	if err := expect(res, site.ContentTypeJSON); err != nil {
		return err
	}

	return p.schema.Validate(body)
}

func expect(res *http.Response, contentType string) error {
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	if got := res.Header.Get("Content-Type"); !strings.HasPrefix(got, contentType) {
		return fmt.Errorf("%w: %q", ErrContentType, got)
	}

	return nil
}
