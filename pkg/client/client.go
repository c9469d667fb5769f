package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/naveenspark/ghprofile/pkg/domain"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds each request when no other timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxRepos is the largest page GitHub serves; only the first page is fetched.
const maxRepos = 100

// Client is a read-only GitHub REST API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	userAgent  string
}

// WithHTTPClient sets the base HTTP client. Its transport is wrapped when a token is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// New creates a new API client. An empty baseURL selects DefaultBaseURL.
// A non-empty token is sent as a bearer credential on every request.
func New(baseURL, token string, opts ...Option) *Client {
	o := options{
		timeout:   DefaultTimeout,
		userAgent: "ghprofile",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	if hc.Timeout == 0 {
		hc.Timeout = o.timeout
	}
	if token = strings.TrimSpace(token); token != "" {
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   hc.Transport,
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  o.userAgent,
		httpClient: hc,
		logger:     o.logger,
	}
}

// FetchProfile looks up a user and then lists their repositories.
// The repository request is only sent once the profile lookup succeeds.
// Every failure is a *FetchError.
func (c *Client) FetchProfile(ctx context.Context, username string) (*domain.ProfileResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &FetchError{Kind: ErrEmptyUsername}
	}

	var profile domain.Profile
	if err := c.get(ctx, "/users/"+url.PathEscape(username), &profile); err != nil {
		return nil, c.classify(err, username, classifyProfileStatus, ErrUpstream)
	}

	params := url.Values{}
	params.Set("sort", "updated")
	params.Set("per_page", fmt.Sprintf("%d", maxRepos))

	var repos []domain.Repository
	path := "/users/" + url.PathEscape(username) + "/repos?" + params.Encode()
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, c.classify(err, username, func(int) error { return ErrRepositoryFetch }, ErrRepositoryFetch)
	}
	if repos == nil {
		repos = []domain.Repository{}
	}

	return &domain.ProfileResult{Profile: profile, Repositories: repos}, nil
}

// classify turns a transport or HTTP error into a *FetchError.
// Non-2xx responses are classed by byStatus, undecodable 2xx bodies by onDecode.
func (c *Client) classify(err error, username string, byStatus func(int) error, onDecode error) *FetchError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return &FetchError{Kind: byStatus(httpErr.StatusCode), Status: httpErr.StatusCode, Username: username, Err: err}
	}
	var decErr *decodeError
	if errors.As(err, &decErr) {
		return &FetchError{Kind: onDecode, Status: decErr.status, Username: username, Err: err}
	}
	return &FetchError{Kind: ErrNetwork, Username: username, Err: err}
}

// decodeError marks a 2xx response whose body could not be decoded.
type decodeError struct {
	status int
	err    error
}

func (e *decodeError) Error() string { return fmt.Sprintf("decode response: %v", e.err) }
func (e *decodeError) Unwrap() error { return e.err }

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.logger.Debug("request completed",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &decodeError{status: resp.StatusCode, err: err}
	}
	return nil
}
