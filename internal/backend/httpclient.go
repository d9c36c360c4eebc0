package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"mural/cli/internal/logging"

	"github.com/google/uuid"
)

// UserAgent is sent with every request. cmd overrides it with the build version.
var UserAgent = "mural-cli/dev"

// HTTP implements API client over REST endpoints.
// It holds no session state: every authenticated call receives its token explicitly.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://api.escola.example")
	baseURL string
	// endpoints contains the URL paths for the API
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints Endpoints, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL:   BaseURL(baseURL),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// setStandardHeaders applies headers shared by every request.
func (h *HTTP) setStandardHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", requestID)
}

// do performs one request. in, when non-nil, is sent as JSON; out, when non-nil,
// receives the decoded JSON response. A non-empty token is sent as a bearer
// credential. Any non-2xx status becomes a RequestError.
func (h *HTTP) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return transportError(op, err)
	}
	requestID := uuid.NewString()
	h.setStandardHeaders(req, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		logging.Debugf("%s %s %s failed after %s: %v", requestID, method, path, time.Since(started), err)
		return transportError(op, err)
	}
	defer resp.Body.Close()
	logging.Debugf("%s %s %s -> %d in %s", requestID, method, path, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return statusError(op, resp.StatusCode, b)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty body on a 2xx
		}
		return &RequestError{Op: op, Status: resp.StatusCode, Message: "malformed response: " + err.Error(), Err: err}
	}
	return nil
}
