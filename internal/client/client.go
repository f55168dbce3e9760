// Package client implements the facade over the EventSourcingDB HTTP API:
// one method per protocol verb, request building and response decoding on
// both the single-shot and the streaming paths.
package client

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/metrics"
)

const (
	apiPrefix          = "/api/v1"
	serverHeaderPrefix = "EventSourcingDB/"

	// Error bodies are small; cap what we read from a failed response.
	maxErrorBodySize = 64 * 1024
)

// Client talks to one EventSourcingDB instance. It is safe for concurrent
// use; every call is independent, and streams returned by the read, observe,
// and query verbs each own their connection exclusively.
type Client struct {
	baseURL    *url.URL
	apiToken   string
	httpClient *http.Client
	log        *slog.Logger
	metrics    *metrics.Collector
	tracer     trace.Tracer
}

// New validates the configuration and returns a client. No network call is
// made; use Ping to check reachability.
func New(config Config) (*Client, error) {
	baseURL, err := config.validate()
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	log := config.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var collector *metrics.Collector
	if config.Metrics != nil {
		collector, err = metrics.NewCollector(config.Metrics)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:    baseURL,
		apiToken:   config.APIToken,
		httpClient: httpClient,
		log:        log,
		metrics:    collector,
		tracer:     otel.Tracer("github.com/thenativeweb/eventsourcingdb-client-golang"),
	}, nil
}

// endpoint describes one protocol verb.
type endpoint struct {
	verb      string
	method    string
	authorize bool
}

func (e endpoint) path() string {
	return apiPrefix + "/" + e.verb
}

// issue sends one request and hands back the raw response. The returned
// cancel func aborts the request context; streaming callers keep it alive for
// the stream's lifetime, single-shot callers defer it immediately. A non-nil
// response has passed the status and server-header checks.
func (c *Client) issue(ctx context.Context, ep endpoint, body []byte) (*http.Response, context.CancelFunc, error) {
	ctx, span := c.tracer.Start(ctx, "eventsourcingdb."+ep.verb)
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)

	target := c.baseURL.JoinPath(ep.path())
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, target.String(), reader)
	if err != nil {
		cancel()
		return nil, nil, errspkg.NewTransportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ep.authorize {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	c.log.Debug("request", "verb", ep.verb, "url", target.String())
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, errspkg.NewTransportError(err)
	}
	c.metrics.ObserveRequest(ep.verb, resp.StatusCode, time.Since(started))

	if err := validateServerHeader(resp); err != nil {
		drainAndClose(resp.Body)
		cancel()
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeErrorResponse(resp)
		drainAndClose(resp.Body)
		cancel()
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	return resp, cancel, nil
}

// requestJSON runs a single-shot verb and decodes the response body into out.
// Pass a nil out to discard the body.
func (c *Client) requestJSON(ctx context.Context, ep endpoint, body []byte, out any) error {
	resp, cancel, err := c.issue(ctx, ep, body)
	if err != nil {
		return err
	}
	defer cancel()
	defer drainAndClose(resp.Body)

	if out == nil {
		return nil
	}
	if err := jsoncodec.Decode(resp.Body, out); err != nil {
		return errspkg.NewProtocolError("undecodable response body: " + err.Error())
	}
	return nil
}

// validateServerHeader guards against talking to something that is not an
// EventSourcingDB instance, e.g. a proxy answering in the server's place.
func validateServerHeader(resp *http.Response) error {
	server := resp.Header.Get("Server")
	if !strings.HasPrefix(server, serverHeaderPrefix) {
		return errspkg.NewProtocolError("response is not from an EventSourcingDB server (Server header " + strconv.Quote(server) + ")")
	}
	return nil
}

func decodeErrorResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var payload struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(raw))
	if err := jsoncodec.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &errspkg.ServerError{StatusCode: resp.StatusCode, Message: message}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBodySize))
	_ = body.Close()
}
