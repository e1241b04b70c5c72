package discovery

import (
	"path/filepath"
	"strings"
)

// Filter selects report files by wildcard pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// IsPattern reports whether name contains wildcard characters
func (f *Filter) IsPattern(name string) bool {
	return strings.ContainsAny(name, "*?[")
}

// FilterByName keeps the files whose base name matches pattern.
// Supports patterns like "output-*.xml" or "run-?.json"; an invalid pattern matches nothing.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		matched, err := filepath.Match(pattern, filepath.Base(file))
		if err == nil && matched {
			filtered = append(filtered, file)
		}
	}
	return filtered
}
