package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise fallback.
// Used for partial updates where an absent field keeps its prior value.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
