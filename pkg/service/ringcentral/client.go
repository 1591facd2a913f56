package ringcentral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/secmon-lab/ringsync/pkg/domain/types"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
	"github.com/secmon-lab/ringsync/pkg/utils/safe"
)

const (
	scimPath    = "scim/v2/"
	accountPath = "restapi/v1.0/account/~/"

	extensionPath = accountPath + "extension"
	healthPath    = "scim/health"
)

// Rate-limit response headers consumed from every successful response
const (
	headerRateLimitGroup     = "X-Rate-Limit-Group"
	headerRateLimitRemaining = "X-Rate-Limit-Remaining"
	headerRateLimitWindow    = "X-Rate-Limit-Window"
)

// Client issues HTTP operations against the RingCentral platform. Rate-limit
// state is tracked per client session and shared by all entity services
// created from it; concurrent callers sharing one client share backpressure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *RateLimiter

	queueAllowList []string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

// WithRateLimiter injects a shared rate limiter, e.g. to share backpressure
// between several clients in one process
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(x *Client) {
		x.limiter = limiter
	}
}

// WithQueueAllowList restricts membership-filtered call-queue listing to the
// given queue ids
func WithQueueAllowList(ids []string) Option {
	return func(x *Client) {
		x.queueAllowList = ids
	}
}

// New creates a RingCentral client for the given base service URL. Requests
// are authenticated with bearer tokens obtained from the token source.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("RingCentral base URL is required")
	}
	if tokens == nil {
		return nil, goerr.New("token source is required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		tokens:     tokens,
		limiter:    NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// do executes one request/response cycle in the given rate-limit group:
// pre-check the limiter, send, then on success record rate-limit headers and
// decode the body into out, or on failure classify the fault body into a
// typed error. An empty body with a non-nil out yields an empty result, not a
// parse failure (the platform answers several calls with HTTP 204).
func (x *Client) do(ctx context.Context, group types.RateLimitGroup, method, path string, payload, out any) error {
	if err := x.limiter.Wait(ctx, group); err != nil {
		return err
	}

	body, err := x.doRaw(ctx, group, method, path, payload)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return goerr.Wrap(err, "failed to parse RingCentral response",
			goerr.V("method", method),
			goerr.V("path", path),
		)
	}
	return nil
}

// doRaw sends the request and returns the raw success body. The rate-limit
// pre-check is owned by the caller.
func (x *Client) doRaw(ctx context.Context, group types.RateLimitGroup, method, path string, payload any) ([]byte, error) {
	requestID := uuid.NewString()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode request body",
				goerr.V("method", method), goerr.V("path", path))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, x.baseURL+path, reqBody)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request",
			goerr.V("method", method), goerr.V("path", path))
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := x.tokens.Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to acquire access token",
			goerr.V("request_id", requestID))
	}
	token.SetAuthHeader(req)

	logging.From(ctx).Debug("calling RingCentral",
		"method", method, "path", path, "group", group, "request_id", requestID)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request to RingCentral failed",
			goerr.V("method", method), goerr.V("path", path),
			goerr.V("request_id", requestID))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read RingCentral response",
			goerr.V("method", method), goerr.V("path", path),
			goerr.V("request_id", requestID))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fault := classifyFault(resp, body)
		if errors.Is(fault, ErrNotFound) {
			// informational: callers that can tolerate a missing resource
			// catch this explicitly
			logging.From(ctx).Info("RingCentral reports resource not found",
				"method", method, "path", path, "request_id", requestID)
		}
		return nil, fault
	}

	x.recordRateLimit(resp.Header)
	return body, nil
}

// recordRateLimit feeds the limiter from the three rate-limit headers.
// Responses without the group header are rate-limit-exempt and change no
// state.
func (x *Client) recordRateLimit(header http.Header) {
	group := header.Get(headerRateLimitGroup)
	if group == "" {
		return
	}
	remaining, err := strconv.Atoi(header.Get(headerRateLimitRemaining))
	if err != nil {
		return
	}

	window := defaultRateLimitWindow
	if seconds, err := strconv.Atoi(header.Get(headerRateLimitWindow)); err == nil && seconds > 0 {
		window = time.Duration(seconds) * time.Second
	}

	x.limiter.Observe(types.RateLimitGroup(group), remaining, window)
}

// Check verifies connectivity to the platform. The health endpoint answers
// with the literal body "OK"; the comparison is case-insensitive.
func (x *Client) Check(ctx context.Context) error {
	if err := x.limiter.Wait(ctx, types.RateLimitLight); err != nil {
		return err
	}

	body, err := x.doRaw(ctx, types.RateLimitLight, http.MethodGet, healthPath, nil)
	if err != nil {
		return goerr.Wrap(err, "health check for RingCentral failed")
	}

	if !strings.EqualFold(strings.TrimSpace(string(body)), "OK") {
		return goerr.New("health check for RingCentral returned invalid response",
			goerr.V("body", string(body)))
	}
	return nil
}
