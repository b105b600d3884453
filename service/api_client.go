package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"myclient/domain"
	"myclient/helpers"
	"myclient/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SessionExpiredMessage is the message of the error returned for a 401 response.
const SessionExpiredMessage = "session expired"

// RequestOptions are the per-call options of APIClient.Request.
//
// Method defaults to GET. Headers are applied after the defaults and override them. Body is sent as-is when it is
// a string, []byte or json.RawMessage, JSON-encoded otherwise; nil sends no body.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// APIClient calls the backend API: it adds the bearer token, busts caches on GET, tears the session down on 401
// and turns failed responses into *APIError values carrying a user-facing message.
//
// Safe for concurrent use. Built once in cmd/main and shared by the domain API facades.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	clock      interfaces.TimeProvider
	logger     log.Logger

	// lastStamp is the last cache-busting stamp handed out; stamps are strictly increasing.
	lastStamp atomic.Int64
}

// NewAPIClient creates an APIClient for baseURL (e.g. "http://localhost:8000/api"). Panics on empty baseURL or nil deps.
func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
	session *Session,
	clock interfaces.TimeProvider,
	logger log.Logger,
) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimSuffix(helpers.StrPanic(baseURL, "service.api_client.go: base url is required"), "/"),
		httpClient: helpers.NilPanic(httpClient, "service.api_client.go: http client is required"),
		session:    helpers.NilPanic(session, "service.api_client.go: session is required"),
		clock:      helpers.NilPanic(clock, "service.api_client.go: clock is required"),
		logger:     log.WithPrefix(helpers.NilPanic(logger, "service.api_client.go: logger is required"), "component", "APIClient"),
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Request performs one backend call.
//
// Returns:
// 1) (response, nil) for 2xx with a JSON body, or 204 with the synthetic {"success":true} body;
// 2) *APIError session_expired for 401, after the session has been logged out;
// 3) *APIError validation_failed or request_failed for other non-2xx statuses, message from the detail field;
// 4) *APIError bad_response when the body is not JSON; bad_parameter when the body cannot be encoded;
// 5) the transport error unchanged when the call itself fails.
func (c *APIClient) Request(ctx context.Context, endpoint string, opts RequestOptions) (domain.Response, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	url := c.baseURL + endpoint
	if method == http.MethodGet {
		separator := "?"
		if strings.Contains(url, "?") {
			separator = "&"
		}
		url = fmt.Sprintf("%s%s_t=%d", url, separator, c.nextStamp())
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return domain.Response{}, c.fail(method, endpoint, NewBadParameterError("request body is not serializable", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return domain.Response{}, c.fail(method, endpoint, NewBadParameterError("invalid request", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Response{}, c.fail(method, endpoint, err)
	}
	defer resp.Body.Close()

	level.Debug(c.logger).Log("msg", "API response", "method", method, "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := c.session.Logout(ctx); err != nil {
			level.Error(c.logger).Log("msg", "logout after 401", "err", err)
		}
		return domain.Response{}, c.fail(method, endpoint,
			NewAPIError(ErrSessionExpired, SessionExpiredMessage, resp.StatusCode, nil))
	}

	if resp.StatusCode == http.StatusNoContent {
		return domain.Response{Status: resp.StatusCode, Body: domain.NoContentBody, NoContent: true}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, c.fail(method, endpoint, err)
	}

	var probe json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.Response{}, c.fail(method, endpoint,
			NewAPIError(ErrBadResponse, "invalid response from server", resp.StatusCode, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, validation := DetailMessage(raw)
		code := ErrRequestFailed
		if validation {
			code = ErrValidationFailed
		}
		return domain.Response{}, c.fail(method, endpoint, NewAPIError(code, message, resp.StatusCode, nil))
	}

	return domain.Response{Status: resp.StatusCode, Body: raw}, nil
}

// Get performs a GET request.
func (c *APIClient) Get(ctx context.Context, endpoint string) (domain.Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{Method: http.MethodGet})
}

// Post performs a POST request with body.
func (c *APIClient) Post(ctx context.Context, endpoint string, body any) (domain.Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{Method: http.MethodPost, Body: body})
}

// Put performs a PUT request with body.
func (c *APIClient) Put(ctx context.Context, endpoint string, body any) (domain.Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{Method: http.MethodPut, Body: body})
}

// Delete performs a DELETE request.
func (c *APIClient) Delete(ctx context.Context, endpoint string) (domain.Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{Method: http.MethodDelete})
}

func (c *APIClient) fail(method, endpoint string, err error) error {
	level.Error(c.logger).Log("msg", "API error", "method", method, "endpoint", endpoint, "err", err)
	return err
}

// nextStamp returns the current unix millis, bumped past the previous stamp when the clock has not advanced.
func (c *APIClient) nextStamp() int64 {
	now := c.clock.Now().UnixMilli()
	for {
		last := c.lastStamp.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if c.lastStamp.CompareAndSwap(last, next) {
			return next
		}
	}
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(encoded), nil
	}
}

// decodeAs decodes a successful response into T; a body of the wrong shape is reported as bad_response.
func decodeAs[T any](resp domain.Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, NewAPIError(ErrBadResponse, "unexpected response from server", resp.Status, err)
	}
	return out, nil
}
