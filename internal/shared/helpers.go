// Package shared provides common utility functions used across multiple
// packages in the pyrun codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizePipName lowercases a Python package name and replaces
// underscores and dots with hyphens, following PEP 503 normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// RootModule returns the first segment of a dotted module path. The root is
// the installable unit: "matplotlib.pyplot" installs as matplotlib.
func RootModule(name string) string {
	trimmed := strings.TrimSpace(name)
	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// Levenshtein returns the edit distance between two strings. Used for
// near-miss suggestions when an install fails on an unknown name.
func Levenshtein(s1 string, s2 string) int {
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}
	previous := make([]int, len(s2)+1)
	current := make([]int, len(s2)+1)
	for j := range previous {
		previous[j] = j
	}
	for i := 0; i < len(s1); i++ {
		current[0] = i + 1
		for j := 0; j < len(s2); j++ {
			cost := 0
			if s1[i] != s2[j] {
				cost = 1
			}
			current[j+1] = min(previous[j+1]+1, current[j]+1, previous[j]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(s2)]
}
