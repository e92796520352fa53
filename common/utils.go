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

// TruncateName shortens s to at most limit bytes without splitting a UTF-8 sequence.
//
// Parameters:
//   - s: the name to truncate
//   - limit: the maximum length in bytes
//
// Returns:
//   - string: s, or its longest valid prefix that fits in limit bytes
func TruncateName(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}

// MaxNameLength is the longest entity name, in bytes, the engine keeps: a 32-byte name field less its terminator.
const MaxNameLength = 31
