package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kickstart-dev/kickstart/internal/branding"
	"github.com/kickstart-dev/kickstart/internal/npm"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood in the config file and as KICKSTART_* variables.
const (
	KeyRegistry       = "registry"
	KeyPackageManager = "package_manager"
	KeyInstallCommand = "install_command"
)

// Keys lists every config key in display order.
var Keys = []string{KeyRegistry, KeyPackageManager, KeyInstallCommand}

// Dir returns the path to the config directory (~/.kickstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; the tool never creates one.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyRegistry, npm.DefaultRegistry)

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Registry returns the npm registry base URL.
func Registry() string { return Get(KeyRegistry) }

// PackageManager returns the configured package manager, "" to detect.
func PackageManager() string { return Get(KeyPackageManager) }

// InstallCommand returns the custom install command line, "" for the
// package manager's default.
func InstallCommand() string { return Get(KeyInstallCommand) }

// Setting is one effective config value and where it came from.
type Setting struct {
	Key    string
	Value  string
	Source string
}

// Sources reported by Settings.
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
	SourceUnset   = "unset"
)

// Settings reports every key with its effective value and source.
// changedFlags names keys overridden on the command line.
func Settings(changedFlags map[string]bool) []Setting {
	out := make([]Setting, 0, len(Keys))
	for _, key := range Keys {
		s := Setting{Key: key, Value: Get(key)}
		switch {
		case changedFlags[key]:
			s.Source = SourceFlag
		case envSet(key):
			s.Source = SourceEnv
		case viper.InConfig(key):
			s.Source = SourceFile
		case s.Value != "":
			s.Source = SourceDefault
		default:
			s.Source = SourceUnset
		}
		out = append(out, s)
	}
	return out
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(branding.EnvVar(key))
	return ok
}
