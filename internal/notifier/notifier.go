// Package notifier forwards calculation snapshots to the configured
// endpoint. Delivery is best effort: one POST, no retry, failures are logged.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"premium-estimator/internal/config"
	"premium-estimator/internal/model"
)

// ErrNotConfigured is returned when no endpoint URL is set.
var ErrNotConfigured = errors.New("notification endpoint not configured")

const defaultTimeout = 5 * time.Second

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *fasthttp.Client
	logger   *zap.Logger
	wg       sync.WaitGroup
}

type Option func(*Client)

// WithHTTPClient replaces the fasthttp client, e.g. to dial an in-memory
// listener.
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(cfg config.NotifyConfig, logger *zap.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		endpoint: cfg.URL,
		timeout:  timeout,
		http: &fasthttp.Client{
			Name:                "premium-estimator",
			MaxConnsPerHost:     16,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify posts the snapshot as JSON and waits for the response status. A
// redirect counts as delivered; it is not followed.
func (c *Client) Notify(ctx context.Context, snap model.Snapshot) error {
	if c.endpoint == "" {
		c.logger.Warn("notification skipped", zap.String("inquiry_id", snap.InquiryID), zap.Error(ErrNotConfigured))
		return ErrNotConfigured
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned status %d", status)
	}
	return nil
}

// NotifyAsync sends the snapshot in the background and returns immediately.
// The caller's cancellation does not reach the send, so a superseded
// notification still completes.
func (c *Client) NotifyAsync(ctx context.Context, snap model.Snapshot) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.Notify(ctx, snap)
		switch {
		case err == nil:
			c.logger.Debug("notification sent", zap.String("inquiry_id", snap.InquiryID))
		case errors.Is(err, ErrNotConfigured):
		default:
			c.logger.Error("notification failed", zap.String("inquiry_id", snap.InquiryID), zap.Error(err))
		}
	}()
}

// Wait blocks until every background send has finished. Used on shutdown.
func (c *Client) Wait() {
	c.wg.Wait()
}
