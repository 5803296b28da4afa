package jobrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/constants"
)

const maxErrorBodyBytes = 4096

// HTTPError is returned for responses outside the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%v %v: HTTP %d: %v", e.Method, e.URL, e.StatusCode, e.Body)
}

// apiClient sends JSON requests authenticated with a Storage API token.
type apiClient struct {
	client *http.Client
	token  string
	runId  string
}

// NewHttpClient returns the client used to talk to the Storage API and the job backends.
func NewHttpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = constants.HttpTimeoutDefault
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// withoutTimeout returns a copy of client, sharing its transport, with no overall request timeout.
// It is used for requests that only return once a job has finished; cancel the request context to give up.
func withoutTimeout(client *http.Client) *http.Client {
	if client == nil {
		client = NewHttpClient(0)
	}
	c := *client
	c.Timeout = 0
	return &c
}

func newApiClient(client *http.Client, token string, runId string) *apiClient {
	if client == nil {
		client = NewHttpClient(0)
	}
	return &apiClient{client: client, token: token, runId: runId}
}

// doJSON sends in, if not nil, as the JSON body and decodes the response into out, if not nil.
func (c *apiClient) doJSON(ctx context.Context, method string, url string, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(constants.HeaderStorageApiToken, c.token)
	if c.runId != "" {
		req.Header.Set(constants.HeaderRunId, c.runId)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%v %v failed", method, url)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &HTTPError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response of %v %v", method, url)
	}
	return nil
}
