package registryauth

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) Manager {
	t.Helper()
	backend := NewFallbackBackendWithPath(filepath.Join(t.TempDir(), "registry-auth.enc"))
	return &defaultManager{backend: backend}
}

func TestManagerSetToken(t *testing.T) {
	mgr := newTestManager(t)

	if err := mgr.SetToken("tables.example.com", "s3cr3t"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	got, err := mgr.Token("tables.example.com")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "s3cr3t" {
		t.Errorf("expected %q, got %q", "s3cr3t", got)
	}
}

func TestManagerTokenNotFound(t *testing.T) {
	mgr := newTestManager(t)

	if _, err := mgr.Token("unknown.example.com"); err == nil {
		t.Error("expected error for unknown host")
	}
}

func TestManagerHostIsolation(t *testing.T) {
	mgr := newTestManager(t)

	_ = mgr.SetToken("registry-a.example.com", "token-a")
	_ = mgr.SetToken("registry-b.example.com:8443", "token-b")

	a, err := mgr.Token("registry-a.example.com")
	if err != nil || a != "token-a" {
		t.Fatalf("registry-a: got %q, %v", a, err)
	}
	b, err := mgr.Token("registry-b.example.com:8443")
	if err != nil || b != "token-b" {
		t.Fatalf("registry-b: got %q, %v", b, err)
	}
}

func TestManagerDeleteToken(t *testing.T) {
	mgr := newTestManager(t)

	_ = mgr.SetToken("tables.example.com", "s3cr3t")
	if err := mgr.DeleteToken("tables.example.com"); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if _, err := mgr.Token("tables.example.com"); err == nil {
		t.Error("expected error after delete")
	}
}

func TestManagerRejectsInvalidHost(t *testing.T) {
	mgr := newTestManager(t)

	if err := mgr.SetToken("", "value"); err == nil {
		t.Error("expected error for empty host")
	}
	if err := mgr.SetToken("not a host", "value"); err == nil {
		t.Error("expected error for host with spaces")
	}
}

func TestFallbackBackendPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry-auth.enc")

	b1 := NewFallbackBackendWithPath(path)
	if err := b1.Set("registry:tables.example.com", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b2 := NewFallbackBackendWithPath(path)
	got, err := b2.Get("registry:tables.example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "persisted" {
		t.Errorf("expected %q, got %q", "persisted", got)
	}
}

func TestClearString(t *testing.T) {
	s := "sensitive"
	ClearString(&s)
	if s != "" {
		t.Errorf("expected cleared string, got %q", s)
	}
}
