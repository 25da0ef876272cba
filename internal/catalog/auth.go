package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/session"
)

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup form.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm" validate:"required,eqfield=Password"`
}

// AuthResult is the session a login or signup established.
type AuthResult struct {
	Token  string
	UserID string
}

// AuthStatus is the outcome of a session check.
type AuthStatus struct {
	LoggedIn bool
	User     string
}

// Auth is the authentication resource.
type Auth struct {
	client    *api.Client
	session   *session.Store
	validator *formValidator
	logger    *slog.Logger
}

type authResponse struct {
	Token  string     `json:"token"`
	UserID flexString `json:"user_id"`
}

// Signup registers an account and stores the returned session.
func (a *Auth) Signup(ctx context.Context, r Registration) (AuthResult, error) {
	if err := a.validator.validate(r); err != nil {
		return AuthResult{}, err
	}
	res, err := a.authenticate(ctx, "/auth/signup", Credentials{Username: r.Username, Password: r.Password})
	if err != nil {
		return AuthResult{}, fmt.Errorf("signup: %w", err)
	}
	return res, nil
}

// Login authenticates and stores the returned session.
func (a *Auth) Login(ctx context.Context, c Credentials) (AuthResult, error) {
	if err := a.validator.validate(c); err != nil {
		return AuthResult{}, err
	}
	res, err := a.authenticate(ctx, "/auth/login", c)
	if err != nil {
		return AuthResult{}, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

func (a *Auth) authenticate(ctx context.Context, path string, c Credentials) (AuthResult, error) {
	res, err := a.client.Do(ctx, api.Request{Method: http.MethodPost, Path: path, Body: c})
	if err != nil {
		return AuthResult{}, err
	}
	var body authResponse
	if err := res.Decode(&body); err != nil {
		return AuthResult{}, err
	}
	if body.Token == "" {
		return AuthResult{}, api.NewError(api.KindAPI, "response has no token")
	}
	userID := string(body.UserID)
	if userID == "" {
		userID = c.Username
	}
	if err := a.session.Set(body.Token, userID); err != nil {
		return AuthResult{}, fmt.Errorf("store session: %w", err)
	}
	a.logger.Info("logged in", slog.String("user", userID))
	return AuthResult{Token: body.Token, UserID: userID}, nil
}

// CheckAuth asks the server whether the stored session is still valid. No
// request is sent without a token. A failed check clears the session;
// cancellation leaves it alone.
func (a *Auth) CheckAuth(ctx context.Context) (AuthStatus, error) {
	if !a.session.LoggedIn() {
		return AuthStatus{}, nil
	}
	res, err := a.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/auth/check"})
	if err == nil {
		var body authResponse
		if err = res.Decode(&body); err == nil {
			user := string(body.UserID)
			if user == "" {
				user = a.session.UserID()
			}
			return AuthStatus{LoggedIn: true, User: user}, nil
		}
	}
	if errors.Is(err, api.ErrCanceled) {
		return AuthStatus{}, fmt.Errorf("check auth: %w", err)
	}

	a.logger.Info("session check failed, logging out", slog.Any("error", err))
	if clearErr := a.session.Clear(); clearErr != nil {
		return AuthStatus{}, fmt.Errorf("clear session: %w", clearErr)
	}
	return AuthStatus{}, nil
}

// Logout forgets the stored session. No request is sent.
func (a *Auth) Logout() error {
	if err := a.session.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Session returns the current session without a network call.
func (a *Auth) Session() session.Session {
	return a.session.Snapshot()
}
