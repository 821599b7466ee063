// Package http provides a MediaWiki API implementation of
// wikinews.PageSource.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wikinews"
	"golang.org/x/time/rate"
)

const (
	// DefaultAPIURL is the English Wikipedia API endpoint.
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// DefaultRate is the default number of API requests per second.
	DefaultRate = 1.0

	// DefaultUserAgent identifies the client to the API as its etiquette
	// requires.
	DefaultUserAgent = "wikinews/1.0 (https://github.com/fwojciec/wikinews)"
)

// Ensure PageSource implements wikinews.PageSource at compile time.
var _ wikinews.PageSource = (*PageSource)(nil)

// PageSource retrieves page text with templates expanded, so that the
// digest's tags and per-day blocks are present in the result.
type PageSource struct {
	client    *http.Client
	apiURL    string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	delays    []time.Duration
}

// Option configures a PageSource.
type Option func(*PageSource)

// WithClient sets the HTTP client. Its timeout is left untouched.
func WithClient(c *http.Client) Option {
	return func(s *PageSource) {
		s.client = c
	}
}

// WithAPIURL sets the api.php endpoint.
// Defaults to DefaultAPIURL if not specified.
func WithAPIURL(u string) Option {
	return func(s *PageSource) {
		s.apiURL = u
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *PageSource) {
		s.userAgent = ua
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *PageSource) {
		s.timeout = d
	}
}

// WithRate limits requests to rps per second. A non-positive rps disables
// limiting.
func WithRate(rps float64) Option {
	return func(s *PageSource) {
		if rps <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryDelays sets the backoff delays between attempts.
// Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *PageSource) {
		s.delays = delays
	}
}

// NewPageSource creates a new PageSource.
func NewPageSource(opts ...Option) *PageSource {
	s := &PageSource{
		apiURL:    DefaultAPIURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s
}

// PageText returns the expanded wikitext of page.
// Returns ENOTFOUND if the API response carries no wikitext.
func (s *PageSource) PageText(ctx context.Context, page string) (string, error) {
	if page == "" {
		return "", wikinews.Errorf(wikinews.EINVALID, "page name required")
	}

	body, err := withRetry(ctx, s.delays, func(ctx context.Context) (string, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return s.get(ctx, s.requestURL(page))
	})
	if err != nil {
		return "", err
	}

	return parseExpandTemplates(page, body)
}

func (s *PageSource) requestURL(page string) string {
	q := url.Values{}
	q.Set("action", "expandtemplates")
	q.Set("format", "xml")
	q.Set("prop", "wikitext")
	q.Set("title", page)
	q.Set("text", "{{:"+page+"}}")
	return s.apiURL + "?" + q.Encode()
}

func (s *PageSource) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// parseExpandTemplates extracts the wikitext from an
// action=expandtemplates XML response.
func parseExpandTemplates(page, body string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return "", fmt.Errorf("parsing API response: %w", err)
	}

	root := doc.SelectElement("api")
	if root == nil {
		return "", fmt.Errorf("parsing API response: missing <api> element")
	}

	if apiErr := root.SelectElement("error"); apiErr != nil {
		return "", fmt.Errorf("API error %s: %s",
			apiErr.SelectAttrValue("code", "unknown"),
			apiErr.SelectAttrValue("info", ""))
	}

	el := root.FindElement("expandtemplates/wikitext")
	if el == nil || strings.TrimSpace(el.Text()) == "" {
		return "", wikinews.Errorf(wikinews.ENOTFOUND, "page %q has no content", page)
	}

	return el.Text(), nil
}
