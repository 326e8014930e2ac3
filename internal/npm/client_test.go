package npm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newRegistry(t *testing.T, versions map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RawPath keeps the %2F of scoped names.
		path := r.URL.EscapedPath()
		name, ok := strings.CutSuffix(strings.TrimPrefix(path, "/"), "/latest")
		if !ok {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		name = strings.Replace(name, "%2F", "/", 1)
		v, found := versions[name]
		if !found {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"` + name + `","version":"` + v + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLatest(t *testing.T) {
	server := newRegistry(t, map[string]string{
		"@nuxt/ui": "3.1.2",
		"pinia":    "2.3.0",
	})
	c := New(WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))

	v, err := c.Latest(context.Background(), "@nuxt/ui")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if v.String() != "3.1.2" {
		t.Errorf("version = %s, want 3.1.2", v)
	}

	v, err = c.Latest(context.Background(), "pinia")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if v.String() != "2.3.0" {
		t.Errorf("version = %s, want 2.3.0", v)
	}
}

func TestLatestNotFound(t *testing.T) {
	server := newRegistry(t, nil)
	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := c.Latest(context.Background(), "@nuxt/missing")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "@nuxt/missing") {
		t.Errorf("error should name the package: %v", err)
	}
}

func TestLatestBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "", "status 500"},
		{"invalid json", http.StatusOK, "{", "parsing metadata"},
		{"missing version", http.StatusOK, `{"name":"x"}`, "no version"},
		{"invalid version", http.StatusOK, `{"version":"latest"}`, "parsing version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
			_, err := c.Latest(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLatestSendsHeaders(t *testing.T) {
	var accept, ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(`{"version":"1.0.0"}`))
	}))
	defer server.Close()

	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithUserAgent("kickstart/test"))
	if _, err := c.Latest(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q", accept)
	}
	if ua != "kickstart/test" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestResolveAll(t *testing.T) {
	server := newRegistry(t, map[string]string{
		"@nuxt/icon":  "1.10.3",
		"@nuxt/image": "1.9.0-rc.1",
	})
	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	got, err := ResolveAll(context.Background(), c, []string{"@nuxt/icon", "@nuxt/image", "@nuxt/icon"})
	if err != nil {
		t.Fatalf("ResolveAll() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 versions, got %v", got)
	}
	if r := Range(got["@nuxt/icon"]); r != "^1.10.3" {
		t.Errorf("@nuxt/icon = %q, want ^1.10.3", r)
	}
	if r := Range(got["@nuxt/image"]); r != "1.9.0-rc.1" {
		t.Errorf("@nuxt/image = %q, want exact prerelease", r)
	}
}

func TestResolveAllStopsAtFirstError(t *testing.T) {
	server := newRegistry(t, map[string]string{"pinia": "2.3.0"})
	c := New(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := ResolveAll(context.Background(), c, []string{"nope", "pinia"})
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestEscapeName(t *testing.T) {
	tests := map[string]string{
		"pinia":               "pinia",
		"@nuxt/ui":            "@nuxt%2Fui",
		"@nuxt/test-utils":    "@nuxt%2Ftest-utils",
		"@nuxtjs/tailwindcss": "@nuxtjs%2Ftailwindcss",
	}
	for in, want := range tests {
		if got := escapeName(in); got != want {
			t.Errorf("escapeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultBaseURL(t *testing.T) {
	if got := New(WithBaseURL("")).BaseURL(); got != DefaultRegistry {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultRegistry)
	}
}
