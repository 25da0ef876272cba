package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url, token string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	_ = json.Unmarshal(data, &body)
	return resp.StatusCode, body
}

func TestListPaging(t *testing.T) {
	s := New(t, WithPoses(map[string]any{"id": 1}, map[string]any{"id": 2}, map[string]any{"id": 3}))

	status, body := get(t, s.BaseURL()+"/yoga-actions?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, status)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestAuthRoutes(t *testing.T) {
	s := New(t, WithUser("alice", "secret1"))

	resp, err := http.Post(s.BaseURL()+"/auth/login", "application/json", strings.NewReader(`{"username":"alice","password":"secret1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	var login map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.Equal(t, "alice", login["user_id"])

	status, body := get(t, s.BaseURL()+"/auth/check", login["token"])
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["user_id"])

	status, _ = get(t, s.BaseURL()+"/auth/check", "bogus")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestInjectedFailures(t *testing.T) {
	s := New(t)
	s.InjectFailures(true)

	status, body := get(t, s.BaseURL()+"/yoga-actions", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, InjectedMessage, body["error"])
	assert.Len(t, s.Requests(), 1)
}
