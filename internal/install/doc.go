// Package install runs the package manager's install command inside a
// freshly generated project. The command inherits the terminal so that the
// package manager's own progress output reaches the user unchanged.
package install
