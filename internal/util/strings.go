// Package util provides small helpers shared across the authlane-go
// library that don't fit a domain-specific package.
package util

import "strings"

// SafeTruncate truncates s to at most maxLen bytes without panicking.
// Used when logging correlation tickets, where only a prefix should be
// shown. A negative maxLen yields an empty string.
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// NormalizeBaseURL strips trailing slashes so endpoint paths can be joined
// with a single separator.
func NormalizeBaseURL(url string) string {
	return strings.TrimRight(url, "/")
}
