// Package lightcurve implements the third-party data sources: the light-curve
// service that returns flux time series and the exoplanet archive that
// publishes transit parameters.
package lightcurve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/interfaces"
)

// DefaultTimeout bounds a single request to an upstream service.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 512

// Client implements interfaces.LightCurveSource against a light-curve
// gateway exposing GET /api/v1/lightcurves?target=<id>.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

// ClientOption configures a Client or an Archive.
type ClientOption func(*clientOptions)

type clientOptions struct {
	token      string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// WithToken sets the API token sent as "Authorization: token <value>".
func WithToken(token string) ClientOption {
	return func(o *clientOptions) {
		o.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

func buildOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		userAgent: "planetscope",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}
	return o
}

var _ interfaces.LightCurveSource = (*Client)(nil)

// NewClient creates a light-curve client for the gateway at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	o := buildOptions(opts)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      o.token,
		userAgent:  o.userAgent,
		httpClient: o.httpClient,
	}
}

// Fetch retrieves the light curve for identifier.
// A 404 or an empty flux series is reported as apperr.KindNotFound;
// any other failure as apperr.KindUpstream.
func (c *Client) Fetch(ctx context.Context, identifier string) (*interfaces.LightCurve, error) {
	endpoint := fmt.Sprintf("%s/api/v1/lightcurves?target=%s", c.baseURL, url.QueryEscape(identifier))

	slog.Debug("fetching light curve", "target", identifier)

	var lc interfaces.LightCurve
	if err := getJSON(ctx, c.httpClient, endpoint, c.setHeaders, &lc); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("no light curve found for %s", identifier)
		}
		return nil, fmt.Errorf("lightcurve: fetching %s: %w", identifier, err)
	}

	if lc.Len() == 0 {
		return nil, apperr.NotFound("no light curve found for %s", identifier)
	}
	if len(lc.Time) != 0 && len(lc.Time) != len(lc.Flux) {
		return nil, apperr.Upstream(
			fmt.Sprintf("lightcurve: %s has %d timestamps for %d flux values", identifier, len(lc.Time), len(lc.Flux)), nil)
	}
	if lc.Target == "" {
		lc.Target = identifier
	}

	slog.Debug("light curve fetched", "target", identifier, "samples", lc.Len(), "mission", lc.Mission)
	return &lc, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
}

// getJSON issues a GET and decodes a 200 JSON response into v.
func getJSON(ctx context.Context, client *http.Client, endpoint string, setHeaders func(*http.Request), v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	setHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return apperr.Upstream("request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("upstream returned 404")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperr.Upstream(fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperr.Upstream("decoding response", err)
	}
	return nil
}
