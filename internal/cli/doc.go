// Package cli defines the Cobra command tree for the kickstart CLI. Each
// file registers one top-level command with the root command. Commands
// delegate to internal packages for the work and only handle flags, prompts
// and output formatting.
package cli
