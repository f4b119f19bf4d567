// Package postgres provides the PostgreSQL implementations of the storage
// interfaces defined in internal/store. It owns the SQL: the per-owner
// filtering that enforces task ownership, the filter/sort construction for
// task listings, and the aggregate query behind task statistics.
package postgres
