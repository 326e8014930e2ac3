//go:build integration

package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME, where ~/.kickstart/config.yaml would live
	WorkDir string // parent of the generated projects
}

// setupTestEnv creates isolated temp directories and clears KICKSTART_*
// variables so the run only sees what the test sets up.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	for _, key := range []string{"KICKSTART_REGISTRY", "KICKSTART_PACKAGE_MANAGER", "KICKSTART_INSTALL_COMMAND", "npm_config_user_agent"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return env
}

// mockRegistry is an npm registry serving fixed latest versions.
type mockRegistry struct {
	*httptest.Server

	mu       sync.Mutex
	versions map[string]string
	requests []string
}

func setupRegistry(t *testing.T, versions map[string]string) *mockRegistry {
	t.Helper()

	reg := &mockRegistry{versions: versions}
	reg.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.EscapedPath()
		name, ok := strings.CutSuffix(strings.TrimPrefix(path, "/"), "/latest")
		if !ok {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		name = strings.Replace(name, "%2F", "/", 1)

		reg.mu.Lock()
		reg.requests = append(reg.requests, name)
		v, found := reg.versions[name]
		reg.mu.Unlock()

		if !found {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"` + name + `","version":"` + v + `"}`))
	}))
	t.Cleanup(reg.Close)
	return reg
}

func (r *mockRegistry) Requests() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requests...)
}

// nuxtVersions covers every package in the built-in catalog.
func nuxtVersions() map[string]string {
	return map[string]string{
		"@nuxtjs/tailwindcss": "6.14.0",
		"@nuxt/ui":            "3.1.3",
		"@nuxt/icon":          "1.14.0",
		"@nuxtjs/color-mode":  "3.5.2",
		"@nuxt/image":         "1.10.0",
		"@nuxt/fonts":         "0.11.4",
		"@nuxt/content":       "3.6.0",
		"@nuxt/eslint":        "1.4.1",
		"@pinia/nuxt":         "0.11.1",
		"pinia":               "3.0.3",
		"@nuxtjs/i18n":        "9.5.5",
		"@nuxt/test-utils":    "3.19.1",
		"vitest":              "3.2.3",
		"@vue/test-utils":     "2.4.6",
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q:\n%s", filepath.Base(path), substr, data)
	}
}
