package redmine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ErrTokenMissing is returned when the page carries no csrf-token meta tag.
var ErrTokenMissing = errors.New("csrf-token meta tag not found")

// TokenSource yields the anti-forgery token. It is consulted on every write
// because the token may rotate between gestures.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, used with API-key authentication and tests.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// PageTokenSource reads the token from the project's gantt page.
type PageTokenSource struct {
	client *Client
	path   string
}

// NewPageTokenSource scrapes tokens from the gantt page of projectID, or the
// global gantt page when projectID is empty.
func NewPageTokenSource(c *Client, projectID string) *PageTokenSource {
	path := "issues/gantt"
	if projectID != "" {
		path = "projects/" + projectID + "/issues/gantt"
	}
	return &PageTokenSource{client: c, path: path}
}

func (s *PageTokenSource) Token(ctx context.Context) (string, error) {
	start := time.Now()
	status, token, err := s.fetch(ctx)
	s.client.observe("token", 0, status, start, err)
	return token, err
}

func (s *PageTokenSource) fetch(ctx context.Context) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.resolve(s.path, nil), nil)
	if err != nil {
		return 0, "", fmt.Errorf("creating request: %w", err)
	}
	s.client.decorate(req)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, "", &statusError{Status: resp.StatusCode, Text: statusText(resp)}
	}

	token, err := CSRFTokenFromHTML(io.LimitReader(resp.Body, maxBodyBytes))
	return resp.StatusCode, token, err
}

// CSRFTokenFromHTML returns the content of <meta name="csrf-token">.
func CSRFTokenFromHTML(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return "", fmt.Errorf("parsing page: %w", err)
			}
			return "", ErrTokenMissing
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "head" {
				return "", ErrTokenMissing
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var name, content string
			for _, a := range tok.Attr {
				switch strings.ToLower(a.Key) {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if name == "csrf-token" && content != "" {
				return content, nil
			}
		}
	}
}
