package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	missing, err := loadSession(path)
	if err != nil || missing.Token != "" {
		t.Fatalf("loadSession(missing) = (%#v, %v)", missing, err)
	}

	want := savedSession{Server: "http://localhost:8080", Email: "patient@example.com", Token: "token"}
	if err := saveSession(path, want); err != nil {
		t.Fatalf("saveSession() error: %v", err)
	}
	got, err := loadSession(path)
	if err != nil || got != want {
		t.Fatalf("loadSession() = (%#v, %v), want %#v", got, err, want)
	}

	if err := removeSession(path); err != nil {
		t.Fatalf("removeSession() error: %v", err)
	}
	if err := removeSession(path); err != nil {
		t.Fatalf("removeSession() on missing file error: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if _, err := loadSession(path); err == nil {
		t.Fatal("expected corrupt session file to fail")
	}
}
