//go:build integration

package integration_test

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kickstart-dev/kickstart/internal/catalog"
	"github.com/kickstart-dev/kickstart/internal/install"
	"github.com/kickstart-dev/kickstart/internal/manifest"
	"github.com/kickstart-dev/kickstart/internal/npm"
	"github.com/kickstart-dev/kickstart/internal/scaffold"
	"github.com/kickstart-dev/kickstart/internal/selector"
)

// TestFullFlowWithSelectors drives both selectors with raw key bytes, then
// creates and "installs" the project:
// pick framework -> pick modules -> resolve -> patch -> install.
func TestFullFlowWithSelectors(t *testing.T) {
	env := setupTestEnv(t)
	reg := setupRegistry(t, nuxtVersions())
	ctx := context.Background()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	// Step 1: one arrow down lands on @nuxt/ui.
	fwSel := &selector.Selector{In: strings.NewReader("\x1b[B\r"), Out: io.Discard}
	framework, err := fwSel.SelectSingle(ctx, "UI framework", cat.FrameworkOptions())
	if err != nil {
		t.Fatalf("SelectSingle: %v", err)
	}
	if framework != "ui" {
		t.Fatalf("framework = %q, want ui", framework)
	}

	// Step 2: toggle icon, move to image, toggle.
	modSel := &selector.Selector{In: strings.NewReader(" jj \r"), Out: io.Discard}
	chosen, err := modSel.SelectMultiple(ctx, "Modules", cat.ModuleOptions())
	if err != nil {
		t.Fatalf("SelectMultiple: %v", err)
	}
	var modules []string
	for _, o := range chosen {
		modules = append(modules, o.ID)
	}
	if strings.Join(modules, ",") != "icon,image" {
		t.Fatalf("modules = %v, want [icon image]", modules)
	}

	// Step 3: create with a stand-in install command.
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	installer, err := install.Parse(sh + ` -c "echo installed > .installed"`)
	if err != nil {
		t.Fatalf("install.Parse: %v", err)
	}
	installer.Stdout = io.Discard
	installer.Stderr = io.Discard

	outDir := filepath.Join(env.WorkDir, "storefront")
	result, err := scaffold.Create(ctx, scaffold.Options{
		Name:           "storefront",
		OutputDir:      outDir,
		Framework:      framework,
		Modules:        modules,
		Catalog:        cat,
		Registry:       npm.New(npm.WithBaseURL(reg.URL)),
		PackageManager: install.PNPM,
		Installer:      installer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Step 4: verify state.
	if got := strings.Join(reg.Requests(), ","); got != "@nuxt/ui,@nuxt/icon,@nuxt/image" {
		t.Errorf("registry requests = %s", got)
	}
	pkgPath := filepath.Join(outDir, "package.json")
	assertFileContains(t, pkgPath, `"name": "storefront"`)
	assertFileContains(t, pkgPath, `"@nuxt/ui": "^3.1.3"`)
	assertFileContains(t, pkgPath, `"@nuxt/image": "^1.10.0"`)
	assertFileContains(t, filepath.Join(outDir, "nuxt.config.ts"), "modules: ['@nuxt/ui', '@nuxt/icon', '@nuxt/image'],")
	assertFileContains(t, filepath.Join(outDir, "README.md"), "pnpm dev")
	assertFileExists(t, filepath.Join(outDir, ".gitignore"))
	assertFileContains(t, filepath.Join(outDir, ".installed"), "installed")

	if !result.Installed {
		t.Error("result.Installed = false")
	}
	v, err := manifest.ValidateFile(pkgPath)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !v.Valid {
		t.Errorf("generated package.json invalid: %v", v.Issues)
	}
}

// TestFullFlowAllModules selects the whole catalog and checks dev
// dependencies land in devDependencies.
func TestFullFlowAllModules(t *testing.T) {
	env := setupTestEnv(t)
	reg := setupRegistry(t, nuxtVersions())

	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	var all []string
	for _, m := range cat.Modules {
		all = append(all, m.ID)
	}

	outDir := filepath.Join(env.WorkDir, "everything")
	result, err := scaffold.Create(context.Background(), scaffold.Options{
		Name:      "everything",
		OutputDir: outDir,
		Framework: "tailwindcss",
		Modules:   all,
		Catalog:   cat,
		Registry:  npm.New(npm.WithBaseURL(reg.URL)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(result.Modules) != len(all)+1 {
		t.Errorf("registered %d modules, want %d", len(result.Modules), len(all)+1)
	}

	pkg, err := manifest.Load(filepath.Join(outDir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	dev, _ := pkg.Dependencies(true)
	for _, name := range []string{"@nuxtjs/tailwindcss", "@nuxt/eslint", "@nuxt/test-utils", "vitest", "@vue/test-utils"} {
		if _, ok := dev[name]; !ok {
			t.Errorf("%s missing from devDependencies: %v", name, dev)
		}
	}
	deps, _ := pkg.Dependencies(false)
	if deps["pinia"] != "^3.0.3" {
		t.Errorf("pinia = %q", deps["pinia"])
	}
}

// TestFailedLookupKeepsPartialProject checks that nothing is rolled back
// when a later step fails.
func TestFailedLookupKeepsPartialProject(t *testing.T) {
	env := setupTestEnv(t)
	versions := nuxtVersions()
	delete(versions, "@nuxt/fonts")
	reg := setupRegistry(t, versions)

	cat, _ := catalog.Load()
	outDir := filepath.Join(env.WorkDir, "partial")
	_, err := scaffold.Create(context.Background(), scaffold.Options{
		Name:      "partial",
		OutputDir: outDir,
		Framework: "ui",
		Modules:   []string{"fonts"},
		Catalog:   cat,
		Registry:  npm.New(npm.WithBaseURL(reg.URL)),
	})
	if !errors.Is(err, npm.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}

	assertFileExists(t, filepath.Join(outDir, "package.json"))
	if _, statErr := os.Stat(filepath.Join(outDir, "node_modules")); !os.IsNotExist(statErr) {
		t.Error("install should not have run")
	}
}
