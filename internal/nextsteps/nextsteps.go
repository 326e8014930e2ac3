// Package nextsteps renders the summary printed after a project is created.
package nextsteps

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/kickstart-dev/kickstart/internal/install"
	"github.com/kickstart-dev/kickstart/internal/manifest"
)

// Summary describes a freshly created project.
type Summary struct {
	Name           string
	Dir            string
	PackageManager string
	Installed      bool
	Framework      string
	Modules        []string
	// Packages maps each added package to the range written.
	Packages map[string]string
	Warnings []string
	DocsURL  string
}

// Commands returns the commands the user runs next, in order.
func (s *Summary) Commands() []string {
	cmds := []string{"cd " + s.Dir}
	if !s.Installed {
		cmds = append(cmds, s.PackageManager+" install")
	}
	return append(cmds, install.RunScript(s.PackageManager, "dev"))
}

// Markdown returns the summary as a markdown document.
func (s *Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s is ready\n\n", s.Name)
	if s.Framework != "" {
		fmt.Fprintf(&b, "- **UI framework:** %s\n", s.Framework)
	}
	if len(s.Modules) > 0 {
		fmt.Fprintf(&b, "- **Modules:** %s\n", strings.Join(s.Modules, ", "))
	} else {
		b.WriteString("- **Modules:** none\n")
	}

	if len(s.Packages) > 0 {
		b.WriteString("\n## Added packages\n\n")
		for _, name := range manifest.SortedNames(s.Packages) {
			fmt.Fprintf(&b, "- `%s@%s`\n", name, s.Packages[name])
		}
	}

	b.WriteString("\n## Next steps\n\n```bash\n")
	for _, c := range s.Commands() {
		b.WriteString(c + "\n")
	}
	b.WriteString("```\n")

	if len(s.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	if s.DocsURL != "" {
		fmt.Fprintf(&b, "\nDocumentation: %s\n", s.DocsURL)
	}
	return b.String()
}

// Text returns the summary without markup, for pipes and logs.
func (s *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created %s in %s\n", s.Name, s.Dir)
	if len(s.Packages) > 0 {
		b.WriteString("\nAdded packages:\n")
		for _, name := range manifest.SortedNames(s.Packages) {
			fmt.Fprintf(&b, "  %s@%s\n", name, s.Packages[name])
		}
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "  %s\n", w)
		}
	}
	b.WriteString("\nNext steps:\n")
	for _, c := range s.Commands() {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	return b.String()
}

// Write prints the summary to w, rendered as styled markdown when tty is
// set. Falls back to Text if the markdown renderer fails.
func (s *Summary) Write(w io.Writer, tty bool) error {
	if tty {
		if out, err := renderMarkdown(s.Markdown()); err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}
	_, err := io.WriteString(w, s.Text())
	return err
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
