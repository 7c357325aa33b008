// Package redmine is the HTTP boundary to the remote issue store: it reads
// schedule snapshots, lists chart rows and the assignee roster, and submits
// partial issue updates using the host's form-based write protocol.
package redmine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	// BaseURL is the server root path, e.g. "https://redmine.example.com/".
	BaseURL string
	// APIKey is sent as X-Redmine-API-Key when set.
	APIKey string
	// ProjectID is the project identifier used for token scraping and listings.
	ProjectID string
	// Token, when set, is used as the authenticity token instead of scraping
	// it from the gantt page.
	Token   string
	Timeout time.Duration
}

// Client talks to a Redmine-compatible server.
type Client struct {
	root     *url.URL
	apiKey   string
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a Client for the server at opts.BaseURL.
func NewClient(opts Options, observer Observer) (*Client, error) {
	root, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if root.Scheme == "" || root.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	if !strings.HasSuffix(root.Path, "/") {
		root.Path += "/"
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		root:   root,
		apiKey: opts.APIKey,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
	if opts.Token != "" {
		c.tokens = StaticToken(opts.Token)
	} else {
		c.tokens = NewPageTokenSource(c, opts.ProjectID)
	}
	return c, nil
}

// WithTokenSource replaces the source of the authenticity token.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

// FetchSchedule reads the current schedule fields of an issue. Any failure,
// including a response without an issue object, is a *FetchError.
func (c *Client) FetchSchedule(ctx context.Context, id int) (*domain.ScheduleItem, error) {
	start := time.Now()

	var env issueEnvelope
	status, err := c.getJSON(ctx, fmt.Sprintf("issues/%d.json", id), nil, &env)
	if err == nil && (env.Issue == nil || env.Issue.ID == 0) {
		err = ErrIssueMissing
	}
	if err != nil {
		err = &FetchError{IssueID: id, Err: err}
	}
	c.observe("fetch", id, status, start, err)
	if err != nil {
		return nil, err
	}
	return env.Issue.toDomain(), nil
}

// SubmitUpdate sends only the patch fields plus the method override and a
// freshly read authenticity token. The error is a *PermissionError,
// *ValidationError or *TransportError.
func (c *Client) SubmitUpdate(ctx context.Context, id int, patch domain.Patch) error {
	start := time.Now()
	status, err := c.submit(ctx, id, patch)
	c.observe("submit", id, status, start, err)
	return err
}

func (c *Client) submit(ctx context.Context, id int, patch domain.Patch) (int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, &TransportError{IssueID: id, Err: fmt.Errorf("reading authenticity token: %w", err)}
	}

	form := patch.FormValues()
	form.Set("_method", "put")
	form.Set("authenticity_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.resolve(fmt.Sprintf("issues/%d", id), nil), strings.NewReader(form.Encode()))
	if err != nil {
		return 0, &TransportError{IssueID: id, Err: fmt.Errorf("creating request: %w", err)}
	}
	c.decorate(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-CSRF-Token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{IssueID: id, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode == http.StatusForbidden {
		return resp.StatusCode, &PermissionError{IssueID: id}
	}
	if reasons := parseErrors(body); len(reasons) > 0 {
		return resp.StatusCode, &ValidationError{IssueID: id, Reasons: reasons}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, &TransportError{IssueID: id, Status: resp.StatusCode, StatusText: statusText(resp)}
}

func parseErrors(body []byte) []string {
	if len(body) == 0 {
		return nil
	}
	var env errorsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return env.Errors
}

// resolve builds an absolute URL for a path relative to the server root.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.root
	u.Path = c.root.Path + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) decorate(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Redmine-API-Key", c.apiKey)
	}
	req.Header.Set("User-Agent", "ganttx")
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path, query), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, &statusError{Status: resp.StatusCode, Text: statusText(resp)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) observe(op string, id, status int, start time.Time, err error) {
	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		IssueID:   id,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

// statusError is a non-200 answer to a read.
type statusError struct {
	Status int
	Text   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Status, e.Text)
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
