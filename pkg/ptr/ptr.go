package ptr

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p or returns the zero value of T
func Value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
