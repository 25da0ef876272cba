package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/asana/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, sess *session.Store, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Options{BaseURL: server.URL + "/api", Session: sess, Timeout: timeout})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error for missing host")
	}
}

func TestDo_AttachesHeadersAndKeepsBasePath(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotType, gotAgent, gotRequestID string
	var gotQuery url.Values
	var gotBody map[string]string
	sess := session.NewMemory()
	if err := sess.Set("tok-123", "alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	}, sess, time.Second)

	res, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Query:  url.Values{"page": {"2"}},
		Body:   map[string]string{"username": "alice"},
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if !res.JSON || res.Status != http.StatusOK {
		t.Fatalf("result = %#v, want JSON 200", res)
	}
	var payload map[string]string
	if err := res.Decode(&payload); err != nil || payload["ok"] != "yes" {
		t.Fatalf("Decode = %v, %v", payload, err)
	}

	if gotPath != "/api/auth/login" {
		t.Fatalf("path = %q, want /api/auth/login", gotPath)
	}
	if gotQuery.Get("page") != "2" {
		t.Fatalf("query = %v, want page=2", gotQuery)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotType)
	}
	if !strings.HasPrefix(gotAgent, "asana/") {
		t.Fatalf("User-Agent = %q, want asana/*", gotAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID missing")
	}
	if gotBody["username"] != "alice" {
		t.Fatalf("body = %v, want username alice", gotBody)
	}
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []int{})
	}, nil, time.Second)

	if _, err := c.Do(context.Background(), Request{Path: "/yoga-actions"}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	sess := session.NewMemory()
	if err := sess.Set("stale", "alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}, sess, time.Second)

	_, err := c.Do(context.Background(), Request{Path: "/yoga-actions/1"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if sess.Token() != "" || sess.UserID() != "" {
		t.Fatalf("session = %#v, want cleared", sess.Snapshot())
	}
}

func TestDo_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     any
		wantErr  error
		wantText string
	}{
		{"server message", http.StatusBadRequest, map[string]string{"error": "username taken"}, ErrAPI, "username taken"},
		{"message field", http.StatusConflict, map[string]string{"message": "conflict here"}, ErrAPI, "conflict here"},
		{"generic message", http.StatusInternalServerError, map[string]int{"code": 1}, ErrAPI, "request failed"},
		{"not found", http.StatusNotFound, map[string]string{"error": "no such pose"}, ErrNotFound, "no such pose"},
		{"injected on 500", http.StatusInternalServerError, map[string]string{"error": InjectedErrorMarker}, ErrInjected, InjectedErrorMarker},
		{"injected on 200", http.StatusOK, map[string]string{"error": InjectedErrorMarker}, ErrInjected, InjectedErrorMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}, nil, time.Second)

			_, err := c.Do(context.Background(), Request{Path: "/x"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Fatalf("err = %q, want it to contain %q", err.Error(), tt.wantText)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) || apiErr.Status != tt.status {
				t.Fatalf("status = %#v, want %d", apiErr, tt.status)
			}
		})
	}
}

func TestDo_NonJSONSuccessReturnsSentinel(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("{this is not parsed"))
	}, nil, time.Second)

	res, err := c.Do(context.Background(), Request{Path: "/x"})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if res.JSON || len(res.Body) != 0 || res.Status != http.StatusOK {
		t.Fatalf("result = %#v, want non-JSON sentinel", res)
	}
	if err := res.Decode(&struct{}{}); !errors.Is(err, ErrDecode) {
		t.Fatalf("Decode err = %v, want ErrDecode", err)
	}
}

func TestDo_MalformedJSONIsDecodeError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}, nil, time.Second)

	_, err := c.Do(context.Background(), Request{Path: "/x"})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestDo_TimeoutIsDistinct(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, nil, 50*time.Millisecond)

	_, err := c.Do(context.Background(), Request{Path: "/slow"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrAPI) {
		t.Fatalf("timeout classified as another kind: %v", err)
	}
}

func TestDo_CallerCancelIsNotTimeout(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, nil, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err := c.Do(ctx, Request{Path: "/slow"})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestDo_ConnectionRefusedIsNetworkUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := New(Options{BaseURL: addr, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = c.Do(context.Background(), Request{Path: "/yoga-actions"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("network failure classified as timeout: %v", err)
	}
}

func TestDo_RateLimitedClientStillSucceeds(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		writeJSON(w, http.StatusOK, map[string]int32{"n": n})
	}))
	t.Cleanup(server.Close)

	c, err := New(Options{BaseURL: server.URL, RateLimit: 100, Burst: 1, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := c.Do(context.Background(), Request{Path: "/x"}); err != nil {
			t.Fatalf("Do #%d returned error: %v", i, err)
		}
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("hits = %d, want 3", got)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("KindOf(plain) should be empty")
	}
	wrapped := NewError(KindNotFound, "pose 9 not found").WithCause(ErrTimeout)
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("KindOf = %q, want not_found", KindOf(wrapped))
	}
	if !errors.Is(wrapped, ErrNotFound) || !errors.Is(wrapped, ErrTimeout) {
		t.Fatalf("wrapped error should match both NotFound and Timeout")
	}
}
