package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestCopyTemplateRenamesAndRenders(t *testing.T) {
	src := fstest.MapFS{
		"_gitignore":       {Data: []byte("node_modules\n")},
		"README.md.tmpl":   {Data: []byte("# {{.Name}}\n{{.DevCommand}}\n")},
		"pages/index.vue":  {Data: []byte("<template />\n")},
		"node_modules/x/a": {Data: []byte("skip")},
		".git/HEAD":        {Data: []byte("skip")},
		".DS_Store":        {Data: []byte("skip")},
	}
	dst := t.TempDir()

	files, err := copyTemplate(src, dst, &TemplateData{Name: "demo", DevCommand: "pnpm dev"})
	if err != nil {
		t.Fatalf("copyTemplate() error: %v", err)
	}

	want := map[string]bool{".gitignore": true, "README.md": true, "pages/index.vue": true}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %d entries", files, len(want))
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %q", f)
		}
	}

	readme := readGenerated(t, dst, "README.md")
	assertContains(t, readme, "# demo")
	assertContains(t, readme, "pnpm dev")

	for _, skipped := range []string{"node_modules", ".git", ".DS_Store", "_gitignore"} {
		if _, err := os.Stat(filepath.Join(dst, skipped)); !os.IsNotExist(err) {
			t.Errorf("%s should not be copied", skipped)
		}
	}
}

func TestCopyTemplateMissingKey(t *testing.T) {
	src := fstest.MapFS{
		"x.tmpl": {Data: []byte("{{.Nope}}")},
	}
	_, err := copyTemplate(src, t.TempDir(), &TemplateData{})
	if err == nil {
		t.Fatal("expected error for unknown template field")
	}
}

func TestStarterHasEssentials(t *testing.T) {
	dst := t.TempDir()
	files, err := copyTemplate(Starter(), dst, &TemplateData{
		Name:           "starter",
		InstallCommand: "npm install",
		DevCommand:     "npm run dev",
		BuildCommand:   "npm run build",
	})
	if err != nil {
		t.Fatalf("copyTemplate() error: %v", err)
	}

	joined := strings.Join(files, "\n")
	for _, f := range []string{"package.json", "nuxt.config.ts", "app.vue", ".gitignore", "README.md"} {
		if !strings.Contains(joined, f) {
			t.Errorf("starter is missing %s (got %v)", f, files)
		}
	}
}

func TestEnsureEmptyDir(t *testing.T) {
	t.Run("missing directory is created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "new")
		if err := ensureEmptyDir(dir); err != nil {
			t.Fatalf("ensureEmptyDir() error: %v", err)
		}
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("directory not created: %v", err)
		}
	})

	t.Run("empty directory is accepted", func(t *testing.T) {
		if err := ensureEmptyDir(t.TempDir()); err != nil {
			t.Errorf("ensureEmptyDir() error: %v", err)
		}
	})

	t.Run("non-empty directory is rejected", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		err := ensureEmptyDir(dir)
		if err == nil || !strings.Contains(err.Error(), "not empty") {
			t.Errorf("expected not empty error, got %v", err)
		}
	})
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading generated %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q:\n%s", substr, content)
	}
}
