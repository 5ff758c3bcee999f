package utils

// Ptr returns a pointer to v. Handy for optional config fields like
// *bool where nil means "not set".
func Ptr[T any](v T) *T {
	return &v
}
