// Package catalog declares the UI frameworks and optional modules kickstart
// can add to a new project, together with the npm packages and nuxt.config
// module names each of them needs. The list ships embedded in the binary.
package catalog
