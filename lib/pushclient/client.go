// Package pushclient relays a notification through a pushable server.
package pushclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type Push struct {
	Topic string
	Title string
	Body  string
	Icon  string
	Link  string
}

type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
}

func New(endpoint string, httpClient *http.Client) (*Client, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "Parsing push endpoint")
	}
	if endpointURL.Scheme == "" {
		endpointURL, err = url.Parse("https://" + endpoint)
		if err != nil {
			return nil, errors.Wrap(err, "Parsing push endpoint")
		}
	}
	endpointURL.Path = strings.TrimRight(endpointURL.Path, "/") + "/push"

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpointURL, httpClient: httpClient}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

func (c *Client) Send(ctx context.Context, push Push) error {
	formData := url.Values{}
	formData.Set("topic", push.Topic)
	formData.Set("title", push.Title)
	formData.Set("body", push.Body)
	formData.Set("icon", push.Icon)
	formData.Set("link", push.Link)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(formData.Encode()))
	if err != nil {
		return errors.Wrap(err, "Building push request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "Failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Failed to send push (%d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
