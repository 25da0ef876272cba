package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestOpen_MissingFileIsLoggedOut(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("LoggedIn = true, want false for missing file")
	}
	if !strings.HasPrefix(s.Path(), home) {
		t.Fatalf("Path = %q, want it under HOME %q", s.Path(), home)
	}
}

func TestSet_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Set("tok-1", "alice"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session mode = %v, want 0600", info.Mode().Perm())
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	got := reopened.Snapshot()
	if got.Token != "tok-1" || got.UserID != "alice" {
		t.Fatalf("reopened session = %#v, want tok-1/alice", got)
	}
}

func TestSet_UsesWebStorageKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Set("abc", "7"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "yoga_auth_token") || !strings.Contains(text, "userId") {
		t.Fatalf("session file = %q, want yoga_auth_token and userId keys", text)
	}
}

func TestSet_RejectsEmptyToken(t *testing.T) {
	s := NewMemory()
	if err := s.Set("   ", "alice"); err == nil {
		t.Fatalf("Set returned nil error, want error")
	}
	if s.LoggedIn() {
		t.Fatalf("LoggedIn = true after rejected Set")
	}
}

func TestClear_RemovesTokenUserAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Set("tok", "bob"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.Token() != "" || s.UserID() != "" {
		t.Fatalf("session after Clear = %#v, want empty", s.Snapshot())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present after Clear: %v", err)
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestOpen_InvalidFileFallsBackToLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("LoggedIn = true for invalid file")
	}
}

func TestOpen_UserWithoutTokenIsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("userId = \"alice\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.LoggedIn() || s.UserID() != "" {
		t.Fatalf("session = %#v, want empty", s.Snapshot())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set("tok", "u")
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			if snap.Token == "" && snap.UserID != "" {
				t.Errorf("torn session read: %#v", snap)
			}
			_ = s.Clear()
		}()
	}
	wg.Wait()
}
