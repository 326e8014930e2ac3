// Package npm queries an npm-compatible registry for the latest published
// version of a package and turns it into the caret range written to
// package.json.
package npm
