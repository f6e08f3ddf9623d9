package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// InRange reports whether index addresses an element of a collection of the given length.
//
// Parameters:
//   - index: the index to check
//   - length: the collection length
//
// Returns:
//   - bool: true if 0 <= index < length
func InRange(index, length int) bool {
	return index >= 0 && index < length
}
