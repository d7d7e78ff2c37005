// Package layout persists saved display layouts.
//
// A layout is an ordered set of pages, each holding placed objects.
// Layouts live in SQLite with pages serialised as JSON; a separate
// single-row scratch save holds the editor's work in progress between
// sessions.
package layout
