package client

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
)

// Config holds everything a Client needs. BaseURL and APIToken are required;
// the remaining fields have working zero values.
type Config struct {
	// BaseURL is the root URL of the database instance, e.g.
	// "http://localhost:3000".
	BaseURL string

	// APIToken is sent as a bearer token on every call except Ping.
	APIToken string

	// HTTPClient overrides the transport. Leave nil for a default client
	// without a global timeout; a client-wide timeout would kill long-lived
	// observe connections, so use per-call contexts for deadlines instead.
	HTTPClient *http.Client

	// Logger receives debug-level request and stream lifecycle logs. Leave
	// nil to discard them.
	Logger *slog.Logger

	// Metrics optionally registers Prometheus collectors for this client.
	// Leave nil to disable instrumentation.
	Metrics prometheus.Registerer
}

func (c Config) validate() (*url.URL, error) {
	baseURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, errspkg.NewRequestError("base URL is invalid: " + err.Error())
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, errspkg.NewRequestError("base URL needs an http or https scheme")
	}
	if baseURL.Host == "" {
		return nil, errspkg.NewRequestError("base URL needs a host")
	}
	if c.APIToken == "" {
		return nil, errspkg.NewRequestError("API token must not be empty")
	}
	return baseURL, nil
}
