package utils

import (
	"strconv"
	"strings"
)

// PositiveInt parses s as an int > 0, returning fallback otherwise.
func PositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// NonNegativeInt64 parses s as an int64 >= 0, returning 0 when s is empty
// or malformed.
func NonNegativeInt64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// PageCount returns how many pages of size hold total items.
func PageCount(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
