// Package postgres provides PostgreSQL implementations of the store
// interfaces, backed by database/sql over the pgx driver.
//
// All implementations accept a store.DBTX so the same code runs against a
// pooled connection or inside a caller-managed transaction, and translate
// driver errors into the store error taxonomy via MapError.
package postgres
