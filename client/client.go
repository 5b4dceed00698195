package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goware/urlx"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/uamcli/uamcli/api"
)

const userAgent = "uamcli/0.1.0"

const (
	// Timeouts for plain API calls and for file transfer calls. The connect
	// timeout applies to both.
	apiTimeout      = 30 * time.Second
	transferTimeout = 120 * time.Second
	connectTimeout  = 30 * time.Second
)

// Client executes authenticated requests against the Asset Manager service.
//
// Every call authenticates with HTTP Basic using the service-account key pair.
// Calls are not retried; errors surface to the caller on first failure.
type Client struct {
	servicesURL *url.URL
	orgURL      *url.URL

	organizationID string
	projectID      string
	environmentID  string
	clientID       string
	clientSecret   string

	http     *http.Client
	transfer *http.Client

	servicesAddr string
	orgAddr      string
	tokenAddr    string
}

// New creates a client for the given organization, project and environment
// using service-account credentials.
//
// All five identifiers must be non-empty; missing credentials are reported
// before any network activity.
func New(
	organizationID string,
	projectID string,
	environmentID string,
	clientID string,
	clientSecret string,
	options ...Option,
) (*Client, error) {
	switch {
	case organizationID == "":
		return nil, errors.New("organization ID is required")
	case projectID == "":
		return nil, errors.New("project ID is required")
	case environmentID == "":
		return nil, errors.New("environment ID is required")
	case clientID == "":
		return nil, ErrInvalidClientID
	case clientSecret == "":
		return nil, ErrInvalidClientSecret
	}

	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{DialContext: dialer.DialContext}

	c := &Client{
		organizationID: organizationID,
		projectID:      projectID,
		environmentID:  environmentID,
		clientID:       clientID,
		clientSecret:   clientSecret,
		http:           &http.Client{Timeout: apiTimeout, Transport: transport},
		transfer:       newTransferClient(transport),
		servicesAddr:   api.ServicesBaseURL,
		orgAddr:        api.OrganizationBaseURL,
		tokenAddr:      api.TokenExchangeURL,
	}
	for _, opt := range options {
		opt.Apply(c)
	}

	var err error
	if c.servicesURL, err = urlx.ParseWithDefaultScheme(c.servicesAddr, "https"); err != nil {
		return nil, errors.Wrap(err, "invalid service address")
	}
	if c.orgURL, err = urlx.ParseWithDefaultScheme(c.orgAddr, "https"); err != nil {
		return nil, errors.Wrap(err, "invalid organization address")
	}
	return c, nil
}

// newTransferClient builds the client used for signed-URL uploads and
// downloads. It rides on retryablehttp for its connection handling, but with
// retries pinned off: a failed transfer is one-shot and the caller decides
// whether to start over.
func newTransferClient(transport http.RoundTripper) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient = &http.Client{Timeout: transferTimeout, Transport: transport}
	return rc.StandardClient()
}

// ProjectID returns the project scope of the client.
func (c *Client) ProjectID() string { return c.projectID }

// newRequest builds a request against one of the two service base URLs.
func (c *Client) newRequest(
	base *url.URL,
	method string,
	path string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	u := base.ResolveReference(&url.URL{Path: base.Path + path, RawQuery: query.Encode()})
	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.SetBasicAuth(c.clientID, c.clientSecret)
	return req, nil
}

// sendRequest sends a request with an optional JSON-encoded body under the
// standard API timeout.
func (c *Client) sendRequest(
	ctx context.Context,
	base *url.URL,
	method string,
	path string,
	query url.Values,
	body interface{},
) (*http.Response, error) {
	return c.send(ctx, c.http, base, method, path, query, body)
}

// sendTransferRequest is sendRequest under the longer transfer timeout, for
// calls that bracket a file transfer.
func (c *Client) sendTransferRequest(
	ctx context.Context,
	base *url.URL,
	method string,
	path string,
	query url.Values,
	body interface{},
) (*http.Response, error) {
	return c.send(ctx, c.transfer, base, method, path, query, body)
}

func (c *Client) send(
	ctx context.Context,
	hc *http.Client,
	base *url.URL,
	method string,
	path string,
	query url.Values,
	body interface{},
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf := getBuffer()
		defer putBuffer(buf)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, errors.WithStack(err)
		}
		reader = buf
	}

	req, err := c.newRequest(base, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	} else {
		req.ContentLength = 0
	}
	return c.do(ctx, hc, req)
}

func (c *Client) do(ctx context.Context, hc *http.Client, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := hc.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logrus.WithFields(logrus.Fields{
		"method":  req.Method,
		"url":     req.URL.String(),
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	}).Trace("Completed Asset Manager request")
	return resp, nil
}

// errorFromResponse maps a non-2xx response to a typed error, or nil.
func errorFromResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &UnexpectedResponseError{StatusCode: resp.StatusCode}
}

// parseResponse decodes the response body into value after checking status.
func parseResponse(resp *http.Response, value interface{}) error {
	if err := errorFromResponse(resp); err != nil {
		return err
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	if err := json.Unmarshal(body, value); err != nil {
		return errors.Wrapf(err, "failed to parse response: %s", string(body))
	}
	return nil
}

// Pool of encode buffers shared by all requests.
var buffers = sync.Pool{New: func() interface{} { return new(bytes.Buffer) }}

func getBuffer() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	buffers.Put(buf)
}

// Login exchanges the service-account credentials for a bearer token.
//
// The operative request path authenticates every call with Basic auth, so the
// token is not used for subsequent requests; this exists to validate
// credentials cheaply and for callers that need a token for other tooling.
func (c *Client) Login(ctx context.Context) (string, error) {
	query := url.Values{
		"projectId":     {c.projectID},
		"environmentId": {c.environmentID},
	}
	req, err := http.NewRequest(http.MethodPost, c.tokenAddr+"?"+query.Encode(), nil)
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.ContentLength = 0
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.do(ctx, c.http, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body api.TokenResponse
	if err := parseResponse(resp, &body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}
