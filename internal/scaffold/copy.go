package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed all:templates/nuxt
var templatesFS embed.FS

// Starter returns the embedded Nuxt starter template.
func Starter() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates/nuxt")
	if err != nil {
		panic(err)
	}
	return sub
}

// excludedNames are skipped when copying a template.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
	".nuxt":        true,
	".output":      true,
}

// renamed maps template file names to their output names. Dotfiles are
// stored under another name because npm strips .gitignore from published
// packages and go:embed skips dotfiles by default.
var renamed = map[string]string{
	"_gitignore": ".gitignore",
	"_npmrc":     ".npmrc",
}

// TemplateData holds the variables available to .tmpl files.
type TemplateData struct {
	Name           string
	PackageManager string
	InstallCommand string
	DevCommand     string
	BuildCommand   string
}

// copyTemplate writes every file of src into dst and returns the written
// paths relative to dst, slash-separated. Files ending in .tmpl are executed
// with data and written without the suffix.
func copyTemplate(src fs.FS, dst string, data *TemplateData) ([]string, error) {
	var files []string

	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if excludedNames[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		outRel := outputPath(p)
		outPath := filepath.Join(dst, filepath.FromSlash(outRel))

		if d.IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			return nil
		}
		// Skip symlinks and other special files.
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		if strings.HasSuffix(p, ".tmpl") {
			content, err = render(p, content, data)
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, content, fileMode(d)); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		files = append(files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func outputPath(p string) string {
	dir, name := path.Split(p)
	if n, ok := renamed[name]; ok {
		name = n
	}
	name = strings.TrimSuffix(name, ".tmpl")
	return dir + name
}

func render(name string, content []byte, data *TemplateData) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// fileMode keeps executable bits from on-disk templates. Embedded files
// report 0444, which becomes 0644.
func fileMode(d fs.DirEntry) os.FileMode {
	info, err := d.Info()
	if err != nil {
		return 0644
	}
	return info.Mode().Perm() | 0644
}

// ensureEmptyDir creates dir, refusing to reuse a directory that already
// has entries.
func ensureEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty; remove existing files first", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
