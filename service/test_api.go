package service

import (
	"context"
	"fmt"
	"net/url"

	"myclient/domain"
	"myclient/helpers"
)

// Test targets.
const (
	TargetWeb    = "web"
	TargetMobile = "mobile"
)

// TestAPI wraps the /web and /mobile test-run endpoints.
type TestAPI struct {
	client *APIClient
}

// NewTestAPI creates a TestAPI. Panics on nil client.
func NewTestAPI(client *APIClient) *TestAPI {
	return &TestAPI{client: helpers.NilPanic(client, "service.test_api.go: client is required")}
}

// RunWebTest runs a browser test and waits for its result.
func (t *TestAPI) RunWebTest(ctx context.Context, req domain.WebTestRequest) (domain.TestRunResult, error) {
	return decodeAs[domain.TestRunResult](t.client.Post(ctx, "/web/run-test", req))
}

// RunMobileTest runs a test on a locked device and waits for its result.
func (t *TestAPI) RunMobileTest(ctx context.Context, req domain.MobileTestRequest) (domain.TestRunResult, error) {
	return decodeAs[domain.TestRunResult](t.client.Post(ctx, "/mobile/run-test", req))
}

// ParseNatural turns natural-language steps into structured ones. target is "web" or "mobile"; anything
// other than "mobile" selects web. The text travels in the query string, no body is sent.
func (t *TestAPI) ParseNatural(ctx context.Context, text, target string) (domain.ParseResult, error) {
	return decodeAs[domain.ParseResult](t.client.Post(ctx,
		fmt.Sprintf("/%s/parse?text=%s", normalizeTarget(target), url.QueryEscape(text)), nil))
}

// Health reports whether the web or mobile runner is up.
func (t *TestAPI) Health(ctx context.Context, target string) (domain.HealthStatus, error) {
	return decodeAs[domain.HealthStatus](t.client.Get(ctx, fmt.Sprintf("/%s/health", normalizeTarget(target))))
}

func normalizeTarget(target string) string {
	if target == TargetMobile {
		return TargetMobile
	}
	return TargetWeb
}
