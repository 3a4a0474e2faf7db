package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// StringToUint parses an ID from a path or query parameter. ok is false for
// anything that is not a positive integer.
func StringToUint(s string) (uint, bool) {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil || i == 0 {
		return 0, false
	}
	return uint(i), true
}

// ParseIDList parses a comma-separated list of IDs, skipping blanks and
// anything non-numeric.
func ParseIDList(s string) []uint {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		if id, ok := StringToUint(strings.TrimSpace(part)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
