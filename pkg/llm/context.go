package llm

import (
	"net/http"

	"github.com/doctorew/pocket-morties/pkg/logging"
)

const requestIDHeader = "X-Request-Id"

// requestIDTransport forwards the inbound request ID to the provider so
// provider-side logs can be correlated with ours.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if id := logging.RequestIDFromContext(req.Context()); id != "" {
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, id)
	}
	return t.base.RoundTrip(req)
}
