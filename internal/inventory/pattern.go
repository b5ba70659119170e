package inventory

import (
	"fmt"
	"regexp"
	"strings"
)

// RepoFilter decides which repositories are included in the inventory based
// on glob patterns matched against the repository name. Exclude patterns
// take precedence over include patterns. An empty include list includes
// everything.
type RepoFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewRepoFilter compiles include and exclude glob patterns. Supported
// wildcards are * (any characters) and ? (single character).
func NewRepoFilter(include, exclude []string) (*RepoFilter, error) {
	filter := &RepoFilter{}

	var err error
	if filter.include, err = compileGlobs(include); err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	if filter.exclude, err = compileGlobs(exclude); err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return filter, nil
}

// Match reports whether a repository with the given name belongs in the
// inventory.
func (f *RepoFilter) Match(name string) bool {
	for _, re := range f.exclude {
		if re.MatchString(name) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func compileGlobs(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(globToRegexp(pattern))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// globToRegexp converts a glob pattern to an anchored regular expression.
func globToRegexp(pattern string) string {
	var sb strings.Builder
	sb.WriteString("^")

	for _, char := range pattern {
		switch char {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '.', '+', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\':
			// Escape regex special characters
			sb.WriteRune('\\')
			sb.WriteRune(char)
		default:
			sb.WriteRune(char)
		}
	}

	sb.WriteString("$")
	return sb.String()
}
