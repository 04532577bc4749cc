// Package utils holds small helpers shared across layers: slug derivation
// and string-list normalization used by the movie schemas and repository.
package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify derives the URL-safe identifier for a movie name: lowercase, words
// joined by hyphens, non-alphanumeric characters stripped. The slug is always
// recomputed from the stored name and never supplied by clients.
func Slugify(name string) string {
	return slug.Make(name)
}

// NormalizeList trims every element and drops the ones that are empty after
// trimming. The result is never nil so empty lists serialize as [] rather
// than null.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
