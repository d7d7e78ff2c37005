// Package database wraps the SQLite connection used for layout storage.
//
// It owns connection setup (WAL mode, busy timeout, single-writer pool)
// and schema migrations embedded into the binary. Repositories in the
// domain packages receive the *sql.DB and own their own queries.
package database
