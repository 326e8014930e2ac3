package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kickstart-dev/kickstart/internal/branding"
	"github.com/kickstart-dev/kickstart/internal/catalog"
	"github.com/kickstart-dev/kickstart/internal/config"
	"github.com/kickstart-dev/kickstart/internal/install"
	"github.com/kickstart-dev/kickstart/internal/logging"
	"github.com/kickstart-dev/kickstart/internal/nextsteps"
	"github.com/kickstart-dev/kickstart/internal/npm"
	"github.com/kickstart-dev/kickstart/internal/scaffold"
	"github.com/kickstart-dev/kickstart/internal/selector"
)

// ErrNotInteractive is returned when a choice is missing and stdin cannot
// host a selector.
var ErrNotInteractive = errors.New("stdin is not a terminal: pass --ui (and optionally --modules) to choose without prompts")

var (
	createUI          string
	createModules     []string
	createTemplate    string
	createOutputDir   string
	createPM          string
	createSkipInstall bool
	createRegistry    string
)

// stdinIsTerminal reports whether the selectors can run. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// picker is the interactive selection backend. Replaced in tests.
var picker interface {
	SelectSingle(ctx context.Context, title string, options []selector.Option) (string, error)
	SelectMultiple(ctx context.Context, title string, options []selector.Option) ([]selector.Option, error)
} = &selector.Selector{}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createUI, "ui", "", "UI framework id (see 'modules')")
	f.StringSliceVar(&createModules, "modules", nil, "Comma-separated module ids (see 'modules'); empty for none")
	f.StringVar(&createTemplate, "template", "", "Template directory to copy instead of the built-in starter")
	f.StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	f.StringVar(&createPM, "pm", "", "Package manager: npm, pnpm, yarn or bun (default: detected)")
	f.BoolVar(&createSkipInstall, "skip-install", false, "Do not install dependencies")
	f.StringVar(&createRegistry, "registry", "", "npm registry URL")

	_ = viper.BindPFlag(config.KeyRegistry, f.Lookup("registry"))
	_ = viper.BindPFlag(config.KeyPackageManager, f.Lookup("pm"))

	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new Nuxt project",
	Long: `Scaffold a new Nuxt project from the starter template.

When stdin is a terminal and --ui/--modules are not given, you pick the UI
framework and modules interactively:

  ↑/k ↓/j  move    space  toggle (modules)    enter  confirm    ctrl+c  abort

Examples:
  kickstart create shop
  kickstart create shop --ui ui --modules icon,pinia --pm pnpm
  kickstart create shop --ui tailwindcss --modules= --skip-install`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := scaffold.ValidateName(name); err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	framework, modules, err := chooseSelections(ctx, cmd, cat)
	if err != nil {
		return err
	}

	pm := config.PackageManager()
	if pm == "" {
		pm = install.DetectFromEnv()
	}
	installer, err := resolveInstaller(pm)
	if err != nil {
		return err
	}

	tmpl, err := openTemplate(createTemplate)
	if err != nil {
		return err
	}

	outDir := createOutputDir
	if outDir == "" {
		outDir = filepath.Join(".", name)
	}

	client := npm.New(
		npm.WithBaseURL(config.Registry()),
		npm.WithUserAgent(branding.CLIName()+"/"+buildVersion),
		npm.WithLogger(logging.L),
	)
	logging.L.Debug("creating project", "name", name, "ui", framework, "modules", modules, "pm", pm, "registry", client.BaseURL())

	result, err := scaffold.Create(ctx, scaffold.Options{
		Name:           name,
		OutputDir:      outDir,
		Template:       tmpl,
		Framework:      framework,
		Modules:        modules,
		Catalog:        cat,
		Registry:       client,
		PackageManager: pm,
		Installer:      installer,
		Progress:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	fw, _ := cat.Framework(framework)
	summary := &nextsteps.Summary{
		Name:           name,
		Dir:            result.OutputDir,
		PackageManager: pm,
		Installed:      result.Installed,
		Framework:      fw.Label,
		Modules:        moduleLabels(cat, modules),
		Packages:       result.Packages,
		Warnings:       result.Warnings,
		DocsURL:        branding.DocsURL(),
	}
	out := cmd.OutOrStdout()
	return summary.Write(out, isTerminal(out))
}

// chooseSelections takes the framework and modules from flags, falling back
// to the selectors when stdin is a terminal.
func chooseSelections(ctx context.Context, cmd *cobra.Command, cat *catalog.Catalog) (string, []string, error) {
	interactive := stdinIsTerminal()

	framework := createUI
	if framework == "" {
		if !interactive {
			return "", nil, ErrNotInteractive
		}
		id, err := picker.SelectSingle(ctx, "Which UI framework do you want to use?", cat.FrameworkOptions())
		if err != nil {
			return "", nil, err
		}
		framework = id
	}

	if cmd.Flags().Changed("modules") || !interactive {
		return framework, nonEmpty(createModules), nil
	}

	chosen, err := picker.SelectMultiple(ctx, "Which modules do you want to add?", cat.ModuleOptions())
	if err != nil {
		return "", nil, err
	}
	ids := make([]string, len(chosen))
	for i, o := range chosen {
		ids[i] = o.ID
	}
	return framework, ids, nil
}

// resolveInstaller returns nil when installation is skipped.
func resolveInstaller(pm string) (install.Runner, error) {
	if createSkipInstall {
		return nil, nil
	}
	if line := config.InstallCommand(); line != "" {
		c, err := install.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("install_command: %w", err)
		}
		return c, nil
	}
	return install.ForPackageManager(pm), nil
}

// openTemplate returns nil for the built-in starter.
func openTemplate(dir string) (fs.FS, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func moduleLabels(cat *catalog.Catalog, ids []string) []string {
	var labels []string
	for _, m := range cat.Modules {
		for _, id := range ids {
			if m.ID == id {
				labels = append(labels, m.Label)
				break
			}
		}
	}
	return labels
}

func nonEmpty(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
