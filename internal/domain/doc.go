// Package domain contains the core business entities and validation rules
// of the application: tasks and the users who own them. It is independent
// of any storage or delivery mechanism.
package domain
