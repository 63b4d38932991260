package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ghaggin/newsgate/internal/config"
	"github.com/ghaggin/newsgate/internal/metrics"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-ID"

	// error bodies larger than this are not worth reading for a message
	maxErrorBody = 64 << 10
)

// Client talks to the news backend. Every call is a single request: no
// retries, no caching.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *metrics.Metrics
}

type Params struct {
	fx.In

	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func New(p Params) (*Client, error) {
	return NewClient(p.Config.Backend, p.Log, p.Metrics)
}

func NewClient(cfg config.Backend, log *zap.Logger, m *metrics.Metrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
		metrics: m,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return c, nil
}

// Request sends body as JSON to path and decodes a 2xx reply into out. A
// non-empty token is sent as a bearer credential. out and body may be nil.
func (c *Client) Request(ctx context.Context, method, path, token string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, reqID)

	route := routeLabel(path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, route, "unreachable", start)
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("route", route),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log := c.log.With(
		zap.String("method", method),
		zap.String("route", route),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.observe(method, route, "unauthorized", start)
		log.Info("backend rejected credentials")
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UnauthorizedError{Message: backendMessage(b)}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.observe(method, route, "error", start)
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := statusError(resp.StatusCode, b)
		log.Warn("backend error", zap.String("message", se.Message))
		return se
	}

	c.observe(method, route, "ok", start)
	log.Debug("backend call", zap.Duration("duration", time.Since(start)))

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, route, err)
	}

	return nil
}

func (c *Client) observe(method, route, outcome string, start time.Time) {
	c.metrics.ObserveBackend(method, route, outcome, time.Since(start))
}

// backendMessage pulls the human readable message out of an error body.
func backendMessage(body []byte) string {
	var e struct {
		Error    string `json:"error"`
		Message  string `json:"message"`
		Mensagem string `json:"mensagem"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}

	for _, m := range []string{e.Error, e.Message, e.Mensagem} {
		if m != "" {
			return m
		}
	}
	return ""
}

// routeLabel replaces numeric path segments so metrics stay low-cardinality.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

// IsCanceled reports whether err came from the caller giving up.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
