// Package apitest provides an in-memory fake of the yoga catalog API for
// tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// InjectedMessage is the body the fake sends while failure injection is on.
const InjectedMessage = "Error injected for testing purposes"

// Request is one request the fake received.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

// Server is a chi-routed fake of the catalog API backed by httptest.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	listPath  string
	listField string
	poses     []map[string]any
	passwords map[string]string
	tokens    map[string]string
	bookmarks map[string][]int
	delay     time.Duration
	inject    bool
	protected bool
	requests  []Request
}

// Option configures a Server.
type Option func(*Server)

// WithPoses seeds the pose collection. Objects are served as given.
func WithPoses(poses ...map[string]any) Option {
	return func(s *Server) {
		s.poses = append(s.poses, poses...)
	}
}

// WithListPath mounts the pose collection at path instead of /yoga-actions.
func WithListPath(path string) Option {
	return func(s *Server) {
		s.listPath = "/" + strings.Trim(path, "/")
	}
}

// WithListField wraps list responses in an object under field. An empty
// field serves a bare array.
func WithListField(field string) Option {
	return func(s *Server) {
		s.listField = field
	}
}

// WithProtectedPoses requires a valid token on the pose routes.
func WithProtectedPoses() Option {
	return func(s *Server) {
		s.protected = true
	}
}

// WithUser registers an account.
func WithUser(username, password string) Option {
	return func(s *Server) {
		s.passwords[username] = password
	}
}

// New starts a fake mounted under /api and closes it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		listPath:  "/yoga-actions",
		listField: "data",
		passwords: make(map[string]string),
		tokens:    make(map[string]string),
		bookmarks: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API base, including the /api prefix.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// SetDelay makes every later response wait d before being written.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// InjectFailures toggles the injected-error response for every route.
func (s *Server) InjectFailures(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inject = on
}

// IssueToken logs username in without a request and returns the token.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username)
}

// RevokeTokens invalidates every issued token.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

// Bookmarks returns the stored bookmark ids for username.
func (s *Server) Bookmarks(username string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bookmarks[username])
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RequestsTo returns the received requests whose path equals path, relative
// to the API base.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == "/api"+path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.protected {
				r.Use(s.requireAuth)
			}
			r.Get(s.listPath, s.handleList)
			r.Get(s.listPath+"/{id}", s.handleGet)
		})
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.With(s.requireAuth).Get("/auth/check", s.handleCheck)
		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleBookmarks)
			r.Post("/{id}", s.handleAddBookmark)
			r.Delete("/{id}", s.handleRemoveBookmark)
		})
	})
	return r
}

// record logs the request, then applies the configured delay and failure
// injection.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		delay, inject := s.delay, s.inject
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if inject {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": InjectedMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		user, known := s.tokens[token]
		s.mu.Unlock()
		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithUser(r, user)))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	difficulty := strings.ToLower(q.Get("difficulty"))

	s.mu.Lock()
	var matched []map[string]any
	for _, p := range s.poses {
		if search != "" && !containsText(p, search) {
			continue
		}
		if difficulty != "" && strings.ToLower(fmt.Sprint(p["difficulty"])) != difficulty {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.Unlock()

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		start := min((page-1)*limit, len(matched))
		end := min(start+limit, len(matched))
		matched = matched[start:end]
	}
	if matched == nil {
		matched = []map[string]any{}
	}

	if s.listField == "" {
		writeJSON(w, http.StatusOK, matched)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{s.listField: matched, "total": len(matched)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.poses {
		if fmt.Sprint(p["id"]) == id {
			writeJSON(w, http.StatusOK, map[string]any{"data": p})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "找不到該瑜伽動作"})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Username == "" || c.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.passwords[c.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "username already exists"})
		return
	}
	s.passwords[c.Username] = c.Password
	writeJSON(w, http.StatusCreated, map[string]string{"token": s.issueLocked(c.Username), "user_id": c.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if pw, ok := s.passwords[c.Username]; !ok || pw != c.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid username or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": s.issueLocked(c.Username), "user_id": c.Username})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"user_id": userFrom(r)})
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ids := slices.Clone(s.bookmarks[userFrom(r)])
	s.mu.Unlock()
	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"item_ids": ids})
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := bookmarkID(w, r)
	if !ok {
		return
	}
	user := userFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.bookmarks[user], id) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "already bookmarked"})
		return
	}
	s.bookmarks[user] = append(s.bookmarks[user], id)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "newly bookmarked"})
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := bookmarkID(w, r)
	if !ok {
		return
	}
	user := userFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.bookmarks[user]
	idx := slices.Index(ids, id)
	if idx < 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "not bookmarked"})
		return
	}
	s.bookmarks[user] = slices.Delete(ids, idx, idx+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "bookmark removed"})
}

func (s *Server) issueLocked(username string) string {
	token := gonanoid.Must(32)
	s.tokens[token] = username
	return token
}

func bookmarkID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

func containsText(p map[string]any, needle string) bool {
	for _, key := range []string{"name", "name_en", "title", "effect", "effect_en", "description"} {
		if v, ok := p[key].(string); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
