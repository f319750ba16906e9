package common

// Coalesce returns the first non-zero value, or the zero value if every value is zero.
// The backend uses it to fill sampler settings the caller left unset.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// WrapIndex advances index by step inside a ring of n elements.
// Negative steps walk backwards. Returns 0 when n is not positive.
//
// Parameters:
//   - index: the current position
//   - step: how far to move
//   - n: the ring length
//
// Returns:
//   - int: the new position in [0, n)
func WrapIndex(index, step, n int) int {
	if n <= 0 {
		return 0
	}
	i := (index + step) % n
	if i < 0 {
		i += n
	}
	return i
}
