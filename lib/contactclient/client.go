// Package contactclient talks to the contact backend.
//
// SubmitContact either returns a response whose Success is true or an *ApiError,
// never both. One HTTP request is made per call: no retries, no caching, and no
// timeout unless the injected http.Client or the context sets one.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const maxResponseBytes = 1 << 20

type Config struct {
	// BaseURL is absolute, e.g. http://localhost:5000/api. Endpoints are appended to it.
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "portfolio-contactclient"
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitContact posts the form to <base>/contact. Field contents are sent as given.
func (c *Client) SubmitContact(ctx context.Context, data types.ContactFormData) (types.ApiResponse[types.ContactReceipt], error) {
	return apiFetch[types.ContactReceipt](ctx, c, http.MethodPost, "/contact", data, NetworkErrorMessage)
}

// Health asks the backend for its status. Any parseable body is returned as-is,
// whatever the status code; only an unreachable backend or an unreadable body
// is an error.
func (c *Client) Health(ctx context.Context) (types.ApiResponse[types.HealthStatus], error) {
	ret, _, err := doFetch[types.HealthStatus](ctx, c, http.MethodGet, "/health", nil)
	if err != nil {
		apiErr := newTransportError(err, UnreachableMessage)
		apiErr.Message = UnreachableMessage
		return types.ApiResponse[types.HealthStatus]{}, apiErr
	}
	return ret, nil
}

func apiFetch[T any](ctx context.Context, c *Client, method, endpoint string, body any, networkMessage string) (types.ApiResponse[T], error) {
	ret, status, err := doFetch[T](ctx, c, method, endpoint, body)
	if err != nil {
		return types.ApiResponse[T]{}, newTransportError(err, networkMessage)
	}

	if status < 200 || status > 299 {
		return ret, newStatusError(status, ret.Message, ret.Errors)
	}

	if !ret.Success {
		return ret, newStatusError(status, ret.Message, ret.Errors)
	}

	return ret, nil
}

func doFetch[T any](ctx context.Context, c *Client, method, endpoint string, body any) (types.ApiResponse[T], int, error) {
	var ret types.ApiResponse[T]
	log := logrus.WithField("method", method).WithField("endpoint", endpoint)

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return ret, 0, errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return ret, 0, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ret, 0, err
	}
	defer resp.Body.Close()

	if err := decodeBody(io.LimitReader(resp.Body, maxResponseBytes), &ret); err != nil {
		return ret, 0, errors.Wrapf(err, "decoding response body (status %d)", resp.StatusCode)
	}
	log.Debugf("Got response %d success=%t", resp.StatusCode, ret.Success)

	return ret, resp.StatusCode, nil
}

// decodeBody reads exactly one JSON value; anything after it is an error.
func decodeBody(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return errors.Wrap(err, "unexpected data after JSON body")
	}
	return nil
}
