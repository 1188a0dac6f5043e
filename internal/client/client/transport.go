package client

import (
	"net/http"

	"github.com/dmitrijs2005/voltdrive/internal/common"
)

// bearerTransport adds "Authorization: Bearer <token>" to every request that
// does not already carry the header.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.tokens == nil || req.Header.Get(common.AuthorizationHeaderName) != "" {
		return base.RoundTrip(req)
	}
	token := t.tokens.Token()
	if token == "" {
		return base.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return base.RoundTrip(r)
}
