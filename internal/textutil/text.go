package textutil

import "strings"

// NullIfBlank trims s and returns nil for blank input, for nullable columns
func NullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or ""
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StripBOM removes a leading UTF-8 byte order mark
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// TrimCells trims every cell in place and returns the slice
func TrimCells(cells []string) []string {
	for i := range cells {
		cells[i] = strings.TrimSpace(StripBOM(cells[i]))
	}
	return cells
}

// AllBlank reports whether every cell is empty after trimming
func AllBlank(cells ...string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cell returns cells[i] trimmed, or "" when the row is short
func Cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
