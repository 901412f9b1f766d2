package app

import (
	"strings"
	"testing"
)

func TestShowVersion_PrintsBuildStamp(t *testing.T) {
	out := captureStdout(t, func() {
		if err := ShowVersion("1.2.3", "abcdef", "2026-07-30"); err != nil {
			t.Fatalf("ShowVersion: %v", err)
		}
	})

	if !strings.Contains(out, "1.2.3") {
		t.Fatalf("expected the version string in output, got %q", out)
	}
	if !strings.Contains(out, "abcdef") {
		t.Fatalf("expected the commit hash in output, got %q", out)
	}
	if !strings.Contains(out, "2026-07-30") {
		t.Fatalf("expected the build date in output, got %q", out)
	}
}

func TestShowVersion_OmitsUnknownBuildInfo(t *testing.T) {
	out := captureStdout(t, func() {
		if err := ShowVersion("dev", "unknown", "unknown"); err != nil {
			t.Fatalf("ShowVersion: %v", err)
		}
	})

	if strings.Contains(out, "unknown") {
		t.Fatalf("expected unknown commit/date to be omitted, got %q", out)
	}
}
