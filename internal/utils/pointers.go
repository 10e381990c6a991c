// Package utils holds small generic helpers shared across packages.
package utils

// Ptr returns a pointer to a copy of v, for optional fields such as an HTTP status.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr dereferences v, or returns fallback when v is nil.
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
