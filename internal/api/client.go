package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/time/rate"

	"github.com/five82/asana/internal/logger"
	"github.com/five82/asana/internal/session"
)

const (
	defaultBaseURL   = "http://localhost:3001/api"
	defaultUserAgent = "asana/0.1"
	defaultTimeout   = 10 * time.Second
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // per-request deadline; zero uses 10s
	Session    *session.Store
	Logger     *slog.Logger
	RateLimit  float64 // requests per second; zero disables pacing
	Burst      int
	HTTPClient *http.Client
	UserAgent  string
}

// Client issues single requests against the catalog API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	session   *session.Store
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    *slog.Logger
	userAgent string
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Result is a successful response. JSON is false when the server answered
// with a non-JSON content type; Body is left empty in that case.
type Result struct {
	Status int
	Body   []byte
	JSON   bool
}

// Decode unmarshals the JSON body into dest.
func (r Result) Decode(dest any) error {
	if !r.JSON {
		return ErrDecode.WithCause(fmt.Errorf("response has no JSON body"))
	}
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return ErrDecode.WithCause(err)
	}
	return nil
}

// New builds a Client. A nil Session gets an in-memory store.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	sess := opts.Session
	if sess == nil {
		sess = session.NewMemory()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		baseURL:   base,
		http:      httpClient,
		session:   sess,
		timeout:   timeout,
		logger:    log,
		userAgent: userAgent,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// Session returns the session handle the client reads tokens from.
func (c *Client) Session() *session.Store {
	return c.session
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs one request. The per-request deadline is always released
// before Do returns. A 401 clears the shared session before failing.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("client is nil")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(reqCtx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return Result{}, ErrCanceled.WithCause(err)
			}
			return Result{}, ErrTimeout.WithCause(fmt.Errorf("rate limit wait: %w", err))
		}
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqURL := c.resolve(req.Path, req.Query)
	httpReq, err := http.NewRequestWithContext(reqCtx, method, reqURL, body)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	requestID, idErr := gonanoid.New()
	if idErr == nil {
		httpReq.Header.Set("X-Request-ID", requestID)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if token := c.session.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", req.Path,
		"request_id", requestID,
	)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		classified := classifyTransport(ctx, err)
		c.logger.Warn("api request failed",
			"method", method,
			"path", req.Path,
			"request_id", requestID,
			"kind", KindOf(classified),
			"error", err,
		)
		return Result{}, classified
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, classifyTransport(ctx, fmt.Errorf("read response: %w", err))
	}

	result, err := c.classifyResponse(resp, data)
	if err != nil {
		c.logger.Warn("api request rejected",
			"method", method,
			"path", req.Path,
			"request_id", requestID,
			"status", resp.StatusCode,
			"kind", KindOf(err),
		)
	}
	return result, err
}

func (c *Client) classifyResponse(resp *http.Response, data []byte) (Result, error) {
	status := resp.StatusCode
	msg := serverMessage(data)

	if status == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			c.logger.Error("clear session after 401", "error", err)
		}
		if msg == "" {
			msg = "unauthorized, please log in again"
		}
		return Result{}, &Error{Kind: KindUnauthorized, Status: status, Message: msg}
	}

	if msg == InjectedErrorMarker {
		return Result{}, &Error{Kind: KindInjected, Status: status, Message: msg}
	}

	if status < 200 || status >= 300 {
		if msg == "" {
			msg = "request failed"
		}
		kind := KindAPI
		if status == http.StatusNotFound {
			kind = KindNotFound
		}
		return Result{}, &Error{Kind: kind, Status: status, Message: msg}
	}

	if !isJSON(resp.Header.Get("Content-Type")) || len(bytes.TrimSpace(data)) == 0 {
		return Result{Status: status}, nil
	}
	if !json.Valid(data) {
		return Result{}, &Error{Kind: KindDecode, Status: status, Message: "decode response"}
	}
	return Result{Status: status, Body: data, JSON: true}, nil
}

// classifyTransport maps a failed round trip onto a Kind. The caller's ctx
// distinguishes an abort from our own deadline firing.
func classifyTransport(parent context.Context, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return ErrCanceled.WithCause(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout.WithCause(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout.WithCause(err)
	}
	return ErrNetwork.WithCause(err)
}

// serverMessage extracts the error or message field from a JSON body.
func serverMessage(data []byte) string {
	var payload struct {
		Error   any `json:"error"`
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	for _, v := range []any{payload.Error, payload.Message} {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
