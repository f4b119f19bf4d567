// Package service contains the application services that sit between the
// HTTP handlers and the stores: ownership-checked task operations and
// their validation.
package service

import "errors"

// Common service errors. Service methods return sentinel errors for
// expected conditions; callers classify them with errors.Is and the API
// layer maps them to HTTP status codes. Unexpected store failures pass
// through wrapped so they surface as internal errors.
var (
	// ErrNilDependency is returned by constructors when a required
	// dependency is missing.
	ErrNilDependency = errors.New("required dependency is nil")
)
