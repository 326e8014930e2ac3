package scaffold

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/kickstart-dev/kickstart/internal/catalog"
	"github.com/kickstart-dev/kickstart/internal/install"
	"github.com/kickstart-dev/kickstart/internal/logging"
	"github.com/kickstart-dev/kickstart/internal/manifest"
	"github.com/kickstart-dev/kickstart/internal/npm"
	"github.com/kickstart-dev/kickstart/internal/nuxtconfig"
)

const (
	packageFile = "package.json"
	configFile  = "nuxt.config.ts"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateName checks that name can be used as an npm package name and a
// directory name.
func ValidateName(name string) error {
	if len(name) > 214 || !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9._-]*", name)
	}
	return nil
}

// Options describes one project to create.
type Options struct {
	Name      string
	OutputDir string
	// Template is the project skeleton; nil selects the embedded starter.
	Template fs.FS
	// Framework and Modules are catalog ids.
	Framework string
	Modules   []string

	Catalog  *catalog.Catalog
	Registry npm.Resolver
	// PackageManager names the manager shown in next steps and the README.
	PackageManager string
	// Installer runs after the files are written; nil skips installation.
	Installer install.Runner

	// Progress receives one line per step; nil discards them.
	Progress io.Writer
}

// Result holds the outcome of a project creation.
type Result struct {
	OutputDir string
	Files     []string
	// Packages maps every added package to the range written.
	Packages map[string]string
	// Modules lists the nuxt.config modules registered.
	Modules   []string
	Installed bool
	Warnings  []string
}

// Create scaffolds a project. Steps run in a fixed order and the first
// failure stops the run; files written by earlier steps stay on disk.
func Create(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("no catalog given")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("no registry given")
	}

	deps, err := opts.Catalog.Packages(opts.Framework, opts.Modules)
	if err != nil {
		return nil, err
	}
	entries, err := opts.Catalog.Selection(opts.Framework, opts.Modules)
	if err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	step := func(format string, args ...any) {
		fmt.Fprintf(progress, "› "+format+"\n", args...)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(".", opts.Name)
	}
	pm := opts.PackageManager
	if pm == "" {
		pm = install.NPM
	}

	result := &Result{
		OutputDir: outDir,
		Packages:  make(map[string]string),
	}

	// 1. Copy the template.
	step("Copying template into %s", outDir)
	if err := ensureEmptyDir(outDir); err != nil {
		return nil, err
	}
	tmpl := opts.Template
	if tmpl == nil {
		tmpl = Starter()
	}
	result.Files, err = copyTemplate(tmpl, outDir, &TemplateData{
		Name:           opts.Name,
		PackageManager: pm,
		InstallCommand: pm + " install",
		DevCommand:     install.RunScript(pm, "dev"),
		BuildCommand:   install.RunScript(pm, "build"),
	})
	if err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}
	logging.L.Debug("template copied", "files", len(result.Files), "dir", outDir)

	// 2. Patch package.json with resolved versions.
	pkgPath := filepath.Join(outDir, packageFile)
	pkg, err := manifest.Load(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("template has no usable %s: %w", packageFile, err)
	}
	logging.L.Debug("renaming package", "from", pkg.Name(), "to", opts.Name)
	if err := pkg.SetName(opts.Name); err != nil {
		return nil, err
	}

	names := make([]string, len(deps))
	for i, dep := range deps {
		names[i] = dep.Name
	}
	step("Resolving %d package(s) from the registry", len(names))
	versions, err := npm.ResolveAll(ctx, opts.Registry, names)
	if err != nil {
		return nil, fmt.Errorf("resolving versions: %w", err)
	}

	for _, dep := range deps {
		rng := keepOrRange(pkg, dep, versions[dep.Name])
		if err := pkg.AddDependency(dep.Name, rng, dep.Dev); err != nil {
			return nil, fmt.Errorf("updating %s: %w", packageFile, err)
		}
		result.Packages[dep.Name] = rng
	}
	if err := pkg.Save(pkgPath); err != nil {
		return nil, err
	}

	// 3. Register modules in nuxt.config.ts.
	result.Modules = catalog.NuxtModules(entries)
	step("Registering %d module(s) in %s", len(result.Modules), configFile)
	if err := nuxtconfig.PatchFile(filepath.Join(outDir, configFile), result.Modules); err != nil {
		return nil, fmt.Errorf("updating %s: %w", configFile, err)
	}

	// 4. Validate the generated manifest.
	valResult, valErr := manifest.ValidateFile(pkgPath)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate %s: %v", packageFile, valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, packageFile+": "+issue.String())
		}
	}

	// 5. Install dependencies.
	if opts.Installer != nil {
		step("Installing dependencies with %s", opts.Installer)
		if err := opts.Installer.Install(ctx, outDir); err != nil {
			return nil, fmt.Errorf("installing dependencies: %w", err)
		}
		result.Installed = true
	}

	return result, nil
}

// keepOrRange returns the range already in the template when the latest
// version satisfies it, otherwise the caret range of the latest version.
func keepOrRange(pkg *manifest.Package, dep catalog.Dependency, latest *semver.Version) string {
	for _, dev := range []bool{dep.Dev, !dep.Dev} {
		deps, err := pkg.Dependencies(dev)
		if err != nil {
			continue
		}
		existing, ok := deps[dep.Name]
		if !ok {
			continue
		}
		if ok, err := npm.Satisfies(existing, latest.String()); err == nil && ok {
			logging.L.Debug("keeping template range", "package", dep.Name, "range", existing)
			return existing
		}
	}
	return npm.Range(latest)
}
