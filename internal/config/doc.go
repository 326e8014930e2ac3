// Package config reads user-level settings from ~/.kickstart/config.yaml
// and KICKSTART_* environment variables: the npm registry, the preferred
// package manager, and an optional custom install command. Settings are
// read-only; nothing is written back between runs.
package config
