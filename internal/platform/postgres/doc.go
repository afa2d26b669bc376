// Package postgres implements the document store contract on top of a
// PostgreSQL JSONB table. It is the primary storage backend.
package postgres
