package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("GetFullVersion() = %q, want dev", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-01-02"
	defer func() { Version, GitCommit, BuildDate = "dev", "unknown", "unknown" }()

	if got, want := GetFullVersion(), "1.2.0 (abc123, built 2026-01-02)"; got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
	if got := GetVersion(); got != "1.2.0" {
		t.Errorf("GetVersion() = %q, want 1.2.0", got)
	}
}
