// Package branding provides compile-time identity values for the CLI.
//
// Values come from the embedded branding.yaml; hard defaults cover keys the
// file leaves out.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	DocsURL     string `yaml:"docs_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "kickstart",
			DisplayName: "Kickstart",
			Description: "Scaffold a Nuxt project",
			HomeDir:     ".kickstart",
			EnvPrefix:   "KICKSTART",
			DocsURL:     "https://nuxt.com/docs",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "kickstart").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".kickstart").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "KICKSTART").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DocsURL links to the framework documentation shown after creation.
func DocsURL() string { load(); return defaults.DocsURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("registry") → "KICKSTART_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
