package util

import (
	"regexp"
	"strings"
)

var (
	reParenthetical = regexp.MustCompile(`\([^)]*\)`)
	reSpaces        = regexp.MustCompile(`\s+`)
)

// Dedupe keeps the first occurrence of each value, in order.
func Dedupe[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func StripParenthetical(input string) string {
	return strings.TrimSpace(reParenthetical.ReplaceAllString(input, ""))
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// RemoveWords deletes every occurrence of each word, in order. Matching is
// by substring, so "Maximum" loses its "Max" too.
func RemoveWords(input string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		input = strings.ReplaceAll(input, w, "")
	}
	return input
}

func IsNavigationTitle(title string) bool {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "previous page", "next page":
		return true
	default:
		return false
	}
}
