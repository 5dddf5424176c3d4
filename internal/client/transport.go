package client

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/ishanichuri/portfolio/internal/logging"
)

// optionalBearer attaches the session token when there is one. Without a
// token (signed out or expired) the request still goes out bare and the API
// answers 401.
type optionalBearer struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *optionalBearer) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	tok, err := t.source.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		entry := logging.Op(req.Context(), "attach_token")
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Debug("sending admin request without bearer token")
		return base.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	tok.SetAuthHeader(out)
	return base.RoundTrip(out)
}
