// Package history persists one row per analysis run in SQLite so earlier
// results and reports can be found again without scanning the output
// directory.
//
// The Store owns the connection, schema initialization and busy retries. Rows
// are keyed by run id and rewritten in place when a run is recorded twice.
// Schema changes bump schemaVersion in schema.go; users delete history.db to
// adopt the new schema.
package history
