// Package api provides the HTTP client for the yoga catalog API.
//
// # Overview
//
// Client.Do issues exactly one request and classifies the outcome. Everything
// above this package (the catalog facade, the fallback resolver, the UI)
// branches on the classification, never on response text.
//
// # Request Handling
//
// Every request:
//   - Runs under its own deadline (default 10s) derived from the caller's ctx
//   - Releases that deadline before Do returns, on every path
//   - Sets Content-Type and Accept to application/json
//   - Sets User-Agent: asana/0.1 and a fresh X-Request-ID
//   - Carries Authorization: Bearer <token> while the session holds one
//   - Optionally waits on a token bucket when pacing is configured
//
// No request is ever retried.
//
// # Classification
//
//	401                          → KindUnauthorized (session cleared first)
//	body error == marker string  → KindInjected
//	404                          → KindNotFound
//	other non-2xx                → KindAPI with the server's error/message
//	2xx, non-JSON content type   → Result{JSON: false}, body not parsed
//	2xx, malformed JSON          → KindDecode
//	our deadline fired           → KindTimeout
//	caller cancelled             → KindCanceled
//	dial / DNS / reset           → KindNetwork
//
// All failures are *Error values. Match them with errors.Is against the
// sentinels (ErrTimeout, ErrNetwork, ...) or read the kind with KindOf:
//
//	res, err := client.Do(ctx, api.Request{Path: "/yoga-actions"})
//	switch {
//	case errors.Is(err, api.ErrUnauthorized):
//		// session already cleared
//	case errors.Is(err, api.ErrTimeout):
//		// degrade to bundled data
//	}
//
// # Session Side Effect
//
// A 401 from any endpoint clears the shared *session.Store. Every later
// request, from any caller, goes out without a token. This is the only global
// side effect in the package.
//
// # Base URL
//
// The configured base URL keeps its path prefix; request paths are appended:
//
//	"localhost:3001/api" + "/auth/login" → http://localhost:3001/api/auth/login
package api
