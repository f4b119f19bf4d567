// Package store defines the persistence interfaces consumed by the service
// layer, along with the sentinel errors all implementations return and
// small helpers shared between them (the DBTX abstraction and the
// transaction runner). Concrete implementations live in
// internal/platform/postgres.
package store
