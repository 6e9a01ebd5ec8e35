// Package tickets is a client for the moderation ticket system
package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	perr "tipline/internal/platform/errors"
	"tipline/internal/platform/logger"
)

const (
	defaultUA      = "tipline-snapshot/1.0"
	defaultTimeout = 20 * time.Second
)

// Options configures the ticket client
type Options struct {
	BaseURL    string
	Token      string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
	RatePerSec float64
	Burst      int
}

// Client is a rate limited, retrying ticket system client
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     *logger.Logger

	sleep func(time.Duration)
}

// NewClient constructs a ticket client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryBase <= 0 {
		o.RetryBase = 500 * time.Millisecond
	}
	if o.RatePerSec <= 0 {
		o.RatePerSec = 1
	}
	if o.Burst <= 0 {
		o.Burst = 2
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RatePerSec), o.Burst),
		log:     logger.Named("tickets"),
		sleep:   time.Sleep,
	}
}

type attachRequest struct {
	Kind    string `json:"kind"`
	WorkID  string `json:"work_id"`
	WorkURL string `json:"work_url"`
}

// AttachWorkDownload asks the ticket system to attach a rendered download
// of the work to the ticket. A 404 or 410 means the ticket no longer
// exists; that is not an error, the caller sees the status and moves on
func (c *Client) AttachWorkDownload(ctx context.Context, ticketRef, workID, workURL string) (int, error) {
	payload, err := json.Marshal(attachRequest{Kind: "work_download", WorkID: workID, WorkURL: workURL})
	if err != nil {
		return 0, err
	}
	url := strings.TrimRight(c.opts.BaseURL, "/") + "/tickets/" + ticketRef + "/attachments"

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.opts.RetryBase << uint(attempt-1))
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, err
		}

		status, retryable, err := c.once(ctx, url, payload)
		if err == nil {
			return status, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Debug().Err(err).Int("attempt", attempt).Str("ticket", ticketRef).Msg("attach retry")
	}
	return 0, perr.Wrap(lastErr, perr.ErrorCodeUnavailable, "ticket attachment failed")
}

func (c *Client) once(ctx context.Context, url string, payload []byte) (status int, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return resp.StatusCode, false, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return resp.StatusCode, true, perr.Newf(perr.ErrorCodeUnavailable, "attach status %d", resp.StatusCode)
	case resp.StatusCode >= 300:
		return resp.StatusCode, false, perr.Newf(perr.ErrorCodeUnavailable, "attach status %d", resp.StatusCode)
	}
	return resp.StatusCode, false, nil
}

// Ref formats a ticket reference for a stored report id
func Ref(reportID int64) string { return fmt.Sprintf("%d", reportID) }
