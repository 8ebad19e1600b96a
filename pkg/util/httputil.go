package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the timeout of the default http client.
const DefaultTimeout = 30 * time.Second

var client = &http.Client{Timeout: DefaultTimeout}

// NewHTTPRequest makes an http call with the given method and returns the
// status code and the body of the response. Only GET, POST and DELETE are
// supported.
func NewHTTPRequest(
	ctx context.Context, method, url, body string, header map[string]string,
) (int, string, error) {
	return NewHTTPRequestWithClient(ctx, client, method, url, body, header)
}

// NewHTTPRequestWithClient is like NewHTTPRequest but makes use of the given
// http client.
func NewHTTPRequestWithClient(
	ctx context.Context, c *http.Client,
	method, url, body string, header map[string]string,
) (int, string, error) {
	var reqBody io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost:
		reqBody = strings.NewReader(body)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return rs.StatusCode, string(bodyBytes), nil
}
