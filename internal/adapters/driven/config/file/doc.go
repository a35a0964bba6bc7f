// Package file provides the TOML-backed configuration channel. It stands in
// for the host platform when the wizard runs from the command line: the
// integration configuration lives in a single TOML file, is read and written
// whole, and external edits are surfaced through a filesystem watch.
package file
