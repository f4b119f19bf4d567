// Package mocks provides hand-written test doubles for the interfaces
// defined in the store and service packages. Each mock exposes optional
// Fn fields for per-test behavior and falls back to default field values
// when no function is set.
package mocks
