package registrysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxErrorMessage caps how much of an unstructured error body is kept.
const maxErrorMessage = 512

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends body (if any) encoded with contentType and decodes a 2xx JSON
// response into target. Any failure comes back as a *BackendError.
func (c *SDKClient) doJSON(
	ctx context.Context,
	op, method, path string,
	contentType string,
	body any,
	target any,
) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return unavailable(op, 0, fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return unavailable(op, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return unavailable(op, 0, err)
	}

	return decodeJSON(op, resp, target)
}

func (c *SDKClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// decodeJSON reads the body once, turns non-2xx answers into a rejection and
// decodes the rest into target.
func decodeJSON(op string, resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(op, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rejected(op, resp.StatusCode, parseErrorMessage(resp.StatusCode, bodyBytes))
	}

	if target == nil {
		return nil
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return unavailable(op, resp.StatusCode, errors.New("empty response body"))
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return unavailable(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// parseErrorMessage pulls a human readable message out of an error body. It
// tries the RFC 7591 shape, then {"message"}, then the raw text.
func parseErrorMessage(status int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		if errResp.ErrorDescription != "" {
			return errResp.Error + ": " + errResp.ErrorDescription
		}
		return errResp.Error
	}

	var msgResp messageResponse
	if err := json.Unmarshal(body, &msgResp); err == nil && msgResp.Message != "" {
		return msgResp.Message
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	return truncate(text, maxErrorMessage)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
