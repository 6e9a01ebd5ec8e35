// Package akismet provides the spam classification client for tipline
package akismet

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "tipline/internal/platform/errors"
	"tipline/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://rest.akismet.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "tipline"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
)

// Comment attribute constants fed to the classifier. The labels are part
// of the classifier contract, not branching logic on our side
const (
	CommentTypeContactForm = "contact-form"
	RoleGuest              = "guest"
	RoleUserNonmatching    = "user-with-nonmatching-email"
)

// Attributes is the classification payload for one submission
type Attributes struct {
	CommentType string
	UserRole    string
	Author      string
	AuthorEmail string
	Content     string
	UserIP      string
	UserAgent   string
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	Blog      string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient failures, verdicts are never guessed
	MaxRetries int
	RetryBase  time.Duration

	// Outbound rate limit, zero disables
	RatePerSec float64
	Burst      int
}

// Client is a minimal Akismet comment-check client with bounded retries
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	var lim *rate.Limiter
	if o.RatePerSec > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), burst)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("akismet"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Spam asks the classifier for a verdict on one submission
// A transport or service failure returns an Unavailable error, callers
// must not treat it as a clean verdict
func (c *Client) Spam(ctx context.Context, a Attributes) (bool, error) {
	form := url.Values{}
	form.Set("blog", c.opts.Blog)
	form.Set("comment_type", a.CommentType)
	form.Set("user_role", a.UserRole)
	form.Set("comment_author", a.Author)
	form.Set("comment_author_email", a.AuthorEmail)
	form.Set("comment_content", Sanitize(a.Content))
	if a.UserIP != "" {
		form.Set("user_ip", a.UserIP)
	}
	if a.UserAgent != "" {
		form.Set("user_agent", a.UserAgent)
	}
	body := form.Encode()

	endpoint := c.opts.BaseURL + "/1.1/comment-check"
	attempts := 0
	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return false, perr.Wrap(err, perr.ErrorCodeUnavailable, "akismet rate wait")
			}
		}

		verdict, retryable, err := c.once(ctx, endpoint, body)
		if err == nil {
			return verdict, nil
		}
		attempts++
		if !retryable || attempts >= c.opts.MaxRetries {
			return false, err
		}
		backoff := c.opts.RetryBase * time.Duration(1<<uint(attempts-1))
		c.log.Warn().Err(err).Int("attempt", attempts).Dur("backoff", backoff).Msg("akismet retry")
		select {
		case <-ctx.Done():
			return false, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "akismet canceled")
		default:
			c.sleep(backoff)
		}
	}
}

// once performs a single comment-check call
func (c *Client) once(ctx context.Context, endpoint, body string) (verdict, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return false, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "akismet new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.opts.APIKey != "" {
		req.SetBasicAuth("api", c.opts.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, true, perr.Wrap(err, perr.ErrorCodeUnavailable, "akismet request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return false, true, perr.Unavailablef("akismet status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return false, false, perr.Unavailablef("akismet status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return false, true, perr.Wrap(err, perr.ErrorCodeUnavailable, "akismet read body")
	}
	switch strings.TrimSpace(string(raw)) {
	case "true":
		return true, false, nil
	case "false":
		return false, false, nil
	}
	if help := resp.Header.Get("X-Akismet-Debug-Help"); help != "" {
		return false, false, perr.Unavailablef("akismet rejected request: %s", help)
	}
	return false, false, perr.Unavailablef("akismet unexpected verdict %q", strings.TrimSpace(string(raw)))
}
