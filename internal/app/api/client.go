package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cwrk-planet/aichat/pkg/errs"
	"github.com/cwrk-planet/aichat/pkg/httputil"
	"github.com/cwrk-planet/aichat/pkg/logger"
)

const (
	PathRegister = "/users/register"
	PathLogin    = "/users/login"
	PathChat     = "/chat"
	PathHealth   = "/health"

	HeaderUsername = "X-Username"
)

var (
	ErrTimeout    = fmt.Errorf("%w: request timed out", errs.ErrTimeout)
	ErrConnection = fmt.Errorf("%w: connection failed", errs.ErrUnavailable)
	ErrRequest    = fmt.Errorf("%w: request failed", errs.ErrUpstream)
)

type Client interface {
	Register(ctx context.Context, in CredentialsRequest) (Response, error)
	Login(ctx context.Context, in CredentialsRequest) (Response, error)
	Chat(ctx context.Context, in ChatRequest) (Response, error)
	Health(ctx context.Context) bool
	BaseURL() string
}

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration
	// nil — свой http.Client без общего таймаута, таймауты на контексте
	HTTPClient *http.Client
}

type HTTPClient struct {
	base          string
	http          *http.Client
	timeout       time.Duration
	healthTimeout time.Duration
}

func New(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api client: empty base url")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 5 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &HTTPClient{
		base:          base,
		http:          hc,
		timeout:       opts.Timeout,
		healthTimeout: opts.HealthTimeout,
	}, nil
}

func (c *HTTPClient) BaseURL() string { return c.base }

func (c *HTTPClient) Register(ctx context.Context, in CredentialsRequest) (Response, error) {
	return c.post(ctx, PathRegister, in, nil)
}

func (c *HTTPClient) Login(ctx context.Context, in CredentialsRequest) (Response, error) {
	return c.post(ctx, PathLogin, in, nil)
}

func (c *HTTPClient) Chat(ctx context.Context, in ChatRequest) (Response, error) {
	h := http.Header{}
	h.Set(HeaderUsername, in.Username)
	if in.Token != "" {
		h.Set("Authorization", "Bearer "+in.Token)
	}
	return c.post(ctx, PathChat, in, h)
}

// Health — true только на 200 от /health.
func (c *HTTPClient) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+PathHealth, nil)
	if err != nil {
		return false
	}
	withOutboundMeta(req)

	res, err := c.http.Do(req)
	if err != nil {
		logger.FromContext(ctx).Debug("upstream health failed", "err", err)
		return false
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	return res.StatusCode == http.StatusOK
}

func (c *HTTPClient) post(ctx context.Context, path string, in any, h http.Header) (Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return Response{}, fmt.Errorf("%w: encode body: %v", ErrRequest, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	for k, v := range h {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	withOutboundMeta(req)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, classify(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, classify(err)
	}

	out := Response{Status: res.StatusCode, Body: data}
	logger.FromContext(ctx).Debug("upstream response",
		"endpoint", path,
		"status", out.Status,
		"body", out.Text(),
		"duration", time.Since(start),
	)
	return out, nil
}

// withOutboundMeta прокидывает X-Request-ID входящего запроса в upstream.
func withOutboundMeta(req *http.Request) {
	if rid, ok := httputil.FromContext(req.Context()); ok && rid != "" {
		req.Header.Set(httputil.HeaderRequestID, rid)
	}
}

func classify(err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case isConnErr(err):
		return fmt.Errorf("%w: %v", ErrConnection, err)
	default:
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
}

func isConnErr(err error) bool {
	var op *net.OpError
	if errors.As(err, &op) {
		return true
	}
	var dns *net.DNSError
	return errors.As(err, &dns)
}
