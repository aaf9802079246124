package collector

import (
	"regexp"
	"strings"
)

// globToRegexp converts a glob pattern to an anchored regular expression.
// Supports * (any characters) and ? (single character) wildcards.
func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, char := range pattern {
		switch char {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(char)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// MatchesPattern checks if a name matches a glob pattern.
func MatchesPattern(name, pattern string) bool {
	if pattern == DefaultIncludePattern {
		return true
	}
	re, err := regexp.Compile(globToRegexp(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchesPattern(name, pattern) {
			return true
		}
	}
	return false
}

// ShouldIncludeRepo determines if a repository should be included based on
// include and exclude patterns. Exclude patterns take precedence.
func ShouldIncludeRepo(repoName string, includePatterns, excludePatterns []string) bool {
	if matchesAny(repoName, excludePatterns) {
		return false
	}
	return matchesAny(repoName, includePatterns)
}
