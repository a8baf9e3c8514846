package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"same version", "0.3.0", "0.3.0", false},
		{"patch upgrade", "0.3.1", "0.3.0", true},
		{"minor upgrade", "0.4.0", "0.3.9", true},
		{"major downgrade", "0.9.0", "1.0.0", false},
		{"multi-digit patch", "0.0.100", "0.0.99", true},
		{"different lengths", "1.0", "0.9.12", true},
		{"pre-release same base", "0.3.0-rc1", "0.3.0", false},
		{"build metadata", "0.3.1+abc", "0.3.0", true},
		{"dev build", "0.1.0", "dev", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewerVersion(tt.latest, tt.current); got != tt.expected {
				t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.expected)
			}
		})
	}
}

func TestChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "quickcap/v0.1.0" {
			t.Errorf("Expected User-Agent quickcap/v0.1.0, got %q", ua)
		}
		w.Write([]byte(`{"tag_name":"v0.2.0","html_url":"https://example.invalid/r"}`))
	}))
	defer srv.Close()

	c := &Checker{client: srv.Client(), url: srv.URL}
	release, newer, err := c.Check(context.Background(), "v0.1.0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !newer {
		t.Error("Expected newer release")
	}
	if release.Version() != "0.2.0" {
		t.Errorf("Expected 0.2.0, got %q", release.Version())
	}
}

func TestChecker_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Checker{client: srv.Client(), url: srv.URL}
	if _, _, err := c.Check(context.Background(), "0.1.0"); err == nil {
		t.Error("Expected error for 403, got nil")
	}
}

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	for in, want := range map[string]string{"dev": "dev", "": "dev", "1.2.3": "v1.2.3", "v1.2.3": "v1.2.3"} {
		Version = in
		if got := String(); got != want {
			t.Errorf("String() with %q = %q, want %q", in, got, want)
		}
	}
}
