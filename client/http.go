package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// doJSONRequest performs a JSON request with the given method, path, payload, and result.
// It handles marshaling the payload, creating the request, executing it, and unmarshaling
// the response. If result is nil, the response body is not decoded. Failures come back as
// *CollaboratorError so callers can surface them directly.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CollaboratorError{
			Kind:    KindNetwork,
			Message: "The content service is unreachable. Check that the backend is running and try again.",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeErrorResponse turns a non-2xx response into a CollaboratorError,
// preferring the backend's own detail message when it sends one.
func decodeErrorResponse(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := extractDetail(bodyBytes)
	if message == "" {
		message = fmt.Sprintf("The content service returned an unexpected error (HTTP %d).", resp.StatusCode)
	}

	kind := KindService
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		kind = KindValidation
	}

	return &CollaboratorError{Kind: kind, Status: resp.StatusCode, Message: message}
}

// extractDetail pulls the message out of the backend's error body. The backend
// reports errors as {"detail": "..."} or, for field validation, as
// {"detail": [{"msg": "..."}]}.
func extractDetail(body []byte) string {
	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &plain); err == nil && plain.Detail != "" {
		return plain.Detail
	}

	var fielded struct {
		Detail []struct {
			Msg string `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &fielded); err == nil && len(fielded.Detail) > 0 {
		msgs := make([]string, 0, len(fielded.Detail))
		for _, d := range fielded.Detail {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return strings.TrimSpace(string(body))
}
