package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"github.com/kickstart-dev/kickstart/internal/logging"
)

// Supported package manager identifiers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
	Bun  = "bun"
)

// Managers lists the supported package managers in display order.
var Managers = []string{NPM, PNPM, Yarn, Bun}

// Runner installs dependencies in a project directory.
type Runner interface {
	// Install runs the install command with dir as working directory.
	Install(ctx context.Context, dir string) error
	// String returns the command line as shown to the user.
	String() string
}

// Command is a Runner executing a fixed argv.
type Command struct {
	Args []string
	// Stdin, Stdout and Stderr can be set for testing; they default to the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Install implements Runner.
func (c *Command) Install(ctx context.Context, dir string) error {
	if len(c.Args) == 0 {
		return errors.New("empty install command")
	}

	bin, err := exec.LookPath(c.Args[0])
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", c.Args[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)

	logging.L.Debug("running install", "command", c.String(), "dir", dir)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d", c.String(), exitErr.ExitCode())
		}
		return fmt.Errorf("running %s: %w", c.String(), err)
	}
	return nil
}

// String implements Runner.
func (c *Command) String() string {
	return strings.Join(c.Args, " ")
}

// Parse splits a shell-style command line into a Command.
func Parse(commandLine string) (*Command, error) {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("parsing install command %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("install command %q is empty", commandLine)
	}
	return &Command{Args: args}, nil
}

// ForPackageManager returns the install Runner for a package manager. An
// unknown name yields a Runner that fails when run.
func ForPackageManager(name string) Runner {
	switch name {
	case NPM, PNPM, Yarn, Bun:
		return &Command{Args: []string{name, "install"}}
	default:
		return &unknownManager{name: name}
	}
}

// unknownManager is returned when the package manager is not recognized.
type unknownManager struct {
	name string
}

func (u *unknownManager) Install(context.Context, string) error {
	return fmt.Errorf("unknown package manager %q: supported are %s", u.name, strings.Join(Managers, ", "))
}

func (u *unknownManager) String() string {
	return u.name + " install"
}

// Detect returns the package manager named in an npm_config_user_agent
// value ("pnpm/9.1.0 npm/? node/v20.11.0 linux x64"), or npm.
func Detect(userAgent string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(userAgent), " ")
	name, _, _ := strings.Cut(first, "/")
	for _, m := range Managers {
		if name == m {
			return m
		}
	}
	return NPM
}

// DetectFromEnv applies Detect to the environment of the current process,
// which package managers set when they launch a create-* binary.
func DetectFromEnv() string {
	return Detect(os.Getenv("npm_config_user_agent"))
}

// RunScript returns the command that runs a package.json script with pm.
func RunScript(pm, script string) string {
	if pm == NPM {
		return "npm run " + script
	}
	return pm + " " + script
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
