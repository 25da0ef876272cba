package apitest

import (
	"context"
	"net/http"
)

func contextWithUser(r *http.Request, user string) context.Context {
	return context.WithValue(r.Context(), userKey{}, user)
}

func userFrom(r *http.Request) string {
	user, _ := r.Context().Value(userKey{}).(string)
	return user
}
