package lightcurve

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/interfaces"
	"github.com/toyinlola/planetscope/pkg/quantity"
)

// DefaultArchiveURL is the MAST exoplanet service.
const DefaultArchiveURL = "https://exo.mast.stsci.edu"

// Archive implements interfaces.TransitSource against the MAST exoplanet
// identifiers API.
type Archive struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

var _ interfaces.TransitSource = (*Archive)(nil)

// NewArchive creates an exoplanet archive client.
// If baseURL is empty, it defaults to DefaultArchiveURL.
func NewArchive(baseURL string, opts ...ClientOption) *Archive {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	o := buildOptions(opts)
	return &Archive{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      o.token,
		userAgent:  o.userAgent,
		httpClient: o.httpClient,
	}
}

// identifiersResponse is the body of /api/v0.1/exoplanets/identifiers/.
type identifiersResponse struct {
	Data []struct {
		Period quantity.Value `json:"period"`
		T0     quantity.Value `json:"t0"`
	} `json:"data"`
}

// TransitParameters returns the period and t0 of the first planet listed
// for identifier. An empty result is reported as apperr.KindNotFound.
func (a *Archive) TransitParameters(ctx context.Context, identifier string) (*interfaces.Transit, error) {
	q := url.Values{}
	q.Set("input", identifier)
	q.Set("columns", "t0, period")
	endpoint := fmt.Sprintf("%s/api/v0.1/exoplanets/identifiers/?%s", a.baseURL, q.Encode())

	var body identifiersResponse
	if err := getJSON(ctx, a.httpClient, endpoint, a.setHeaders, &body); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("no transit parameters available for %s", identifier)
		}
		return nil, fmt.Errorf("lightcurve: transit parameters for %s: %w", identifier, err)
	}

	if len(body.Data) == 0 {
		return nil, apperr.NotFound("no transit parameters available for %s", identifier)
	}

	first := body.Data[0]
	return &interfaces.Transit{
		Period: first.Period,
		T0:     first.T0,
	}, nil
}

func (a *Archive) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	if a.token != "" {
		req.Header.Set("Authorization", "token "+a.token)
	}
}
