// Package nuxtconfig registers modules in a project's nuxt.config.ts by
// editing the source text. It understands the shape of the starter
// template's config, not arbitrary TypeScript.
package nuxtconfig

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNoConfigObject is returned when no defineNuxtConfig({ call can be
// found.
var ErrNoConfigObject = errors.New("no defineNuxtConfig({ ... }) object found")

var (
	configObject = regexp.MustCompile(`defineNuxtConfig\(\s*\{`)
	quotedEntry  = regexp.MustCompile(`['"]([^'"]+)['"]`)
	// Indentation of the first property inside the config object.
	propertyIndent = regexp.MustCompile(`defineNuxtConfig\(\s*\{[^\S\n]*\n([ \t]+)\S`)
	// modules as the first property of a one-line config object.
	inlineModules = regexp.MustCompile(`(?s)defineNuxtConfig\(\s*\{\s*(modules\s*:\s*\[)(.*?)(\])`)
)

// modulesArray matches a modules property at the config object's own
// indent, so arrays of the same name inside nested option objects or
// comments are left alone. The array body is captured lazily up to the
// first closing bracket; nested arrays inside it are not supported.
func modulesArray(indent string) *regexp.Regexp {
	return regexp.MustCompile(`(?ms)^` + regexp.QuoteMeta(indent) + `(modules\s*:\s*\[)(.*?)(\])`)
}

// findModulesArray returns submatch indices of the top-level modules
// array in src, or nil.
func findModulesArray(src string, configStart int, indent string) []int {
	if loc := inlineModules.FindStringSubmatchIndex(src); loc != nil {
		return loc
	}
	loc := modulesArray(indent).FindStringSubmatchIndex(src[configStart:])
	if loc == nil {
		return nil
	}
	for i := range loc {
		loc[i] += configStart
	}
	return loc
}

// AddModules returns src with every name in modules registered in the
// config's modules array. Names already present are left alone; the
// returned string equals src when nothing had to be added.
func AddModules(src string, modules []string) (string, error) {
	if len(modules) == 0 {
		return src, nil
	}

	loc := configObject.FindStringIndex(src)
	if loc == nil {
		return "", ErrNoConfigObject
	}

	indent := "  "
	if m := propertyIndent.FindStringSubmatch(src); m != nil {
		indent = m[1]
	}

	if arr := findModulesArray(src, loc[1], indent); arr != nil {
		return appendToArray(src, arr, modules), nil
	}
	prop := "\n" + indent + "modules: [" + quoteAll(unique(modules)) + "],"
	if strings.HasPrefix(strings.TrimLeft(src[loc[1]:], " \t"), "}") {
		prop += "\n"
	}
	return src[:loc[1]] + prop + src[loc[1]:], nil
}

func appendToArray(src string, loc []int, modules []string) string {
	bodyStart, bodyEnd := loc[4], loc[5]
	body := src[bodyStart:bodyEnd]

	present := make(map[string]bool)
	for _, m := range quotedEntry.FindAllStringSubmatch(body, -1) {
		present[m[1]] = true
	}

	var missing []string
	for _, m := range unique(modules) {
		if !present[m] {
			missing = append(missing, m)
		}
	}
	if len(missing) == 0 {
		return src
	}

	trimmed := strings.TrimRight(body, " \t\n")
	var newBody string
	switch {
	case strings.TrimSpace(body) == "":
		newBody = quoteAll(missing)
	case strings.Contains(body, "\n"):
		// Multi-line array: one entry per line, same indent as the last.
		indent := lastLineIndent(trimmed)
		var b strings.Builder
		b.WriteString(strings.TrimSuffix(trimmed, ","))
		for _, m := range missing {
			b.WriteString(",\n" + indent + quote(m))
		}
		b.WriteString(",")
		b.WriteString(body[len(trimmed):])
		newBody = b.String()
	default:
		newBody = strings.TrimSuffix(trimmed, ",") + ", " + quoteAll(missing)
	}
	return src[:bodyStart] + newBody + src[bodyEnd:]
}

// PatchFile applies AddModules to the file at path in place.
func PatchFile(path string, modules []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := AddModules(string(data), modules)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	if out == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func lastLineIndent(s string) string {
	line := s[strings.LastIndex(s, "\n")+1:]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func quote(s string) string {
	return "'" + s + "'"
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = quote(n)
	}
	return strings.Join(q, ", ")
}

func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
