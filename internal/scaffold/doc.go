// Package scaffold creates a new Nuxt project: it copies the starter
// template, adds the chosen framework and modules to package.json and
// nuxt.config.ts with versions resolved from the registry, and finally runs
// the package manager's install. It powers the "kickstart create" command.
package scaffold
