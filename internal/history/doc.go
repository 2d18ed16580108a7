// Package history persists pipeline runs in a local SQLite database so the CLI
// and HTTP server can list and reopen earlier diagrams.
//
// The schema is versioned. A database written by a different schema version is
// rejected with ErrSchemaMismatch rather than migrated.
package history
