package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state", "token")
}

func TestLoad_NoFileMeansUnauthenticated(t *testing.T) {
	s, err := Load(tokenPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated store")
	}
	if s.Token() != "" {
		t.Fatalf("expected empty token, got %q", s.Token())
	}
}

func TestLoginPersistsAndSurvivesReload(t *testing.T) {
	path := tokenPath(t)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Login("tok-abc"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.Authenticated() || s.Token() != "tok-abc" {
		t.Fatalf("unexpected state after login: %q", s.Token())
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Token() != "tok-abc" {
		t.Fatalf("token did not survive reload: %q", reloaded.Token())
	}
}

func TestLoginOverwritesPriorToken(t *testing.T) {
	s, err := Load(tokenPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Login("first"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Login("second"); err != nil {
		t.Fatalf("Login overwrite: %v", err)
	}
	if s.Token() != "second" {
		t.Fatalf("expected overwritten token, got %q", s.Token())
	}
}

func TestLogoutClearsFileAndMemory(t *testing.T) {
	path := tokenPath(t)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Login("tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, stat err=%v", err)
	}
	// Logging out twice is fine.
	if err := s.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestSubscribersSeeClearedTokenOnLogout(t *testing.T) {
	s, err := Load(tokenPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Subscribers read back through the store's own accessors; the mutex
	// must not be held while they run.
	var seen []string
	s.Subscribe(func() { seen = append(seen, s.Token()) })

	if err := s.Login("tok"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(seen) != 2 || seen[0] != "tok" || seen[1] != "" {
		t.Fatalf("subscriber observations wrong: %v", seen)
	}
}

func TestSubscriberMayCheckAuthenticationStatus(t *testing.T) {
	s, err := Load(tokenPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var status []bool
	s.Subscribe(func() { status = append(status, s.Authenticated()) })

	done := make(chan error, 1)
	go func() { done <- s.Login("tok") }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Login did not return; subscriber blocked on the store mutex")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(status) != 2 || !status[0] || status[1] {
		t.Fatalf("subscriber status observations wrong: %v", status)
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s, err := Load(tokenPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Login("   "); err == nil {
		t.Fatalf("expected error for blank token")
	}
}
