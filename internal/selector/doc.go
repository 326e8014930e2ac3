// Package selector implements the interactive terminal pickers used by
// "kickstart create": a single-choice list with radio semantics and a
// checkbox list returning any subset of its options. Both own the terminal
// for their duration through a Bubble Tea program, which puts the input in
// raw mode on entry and restores it on every exit path.
package selector
