// Package manifest reads, patches and validates the package.json of a
// generated project. Top-level keys keep the order they had in the
// template; dependency maps are written sorted, as npm does.
package manifest
