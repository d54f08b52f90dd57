package rename

import (
	"fmt"
	"regexp"
)

// CompilePattern compiles a user supplied pattern. The error names the
// pattern so the user can see what was rejected.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create regex with pattern `%s`: %w", pattern, err)
	}
	return re, nil
}

// FilterMatches returns the names re matches anywhere in, keeping their order.
// A nil re matches everything and names is returned as is.
// Patterns are not anchored: "a" matches "cat.txt".
func FilterMatches(names []string, re *regexp.Regexp, workers int) []string {
	if re == nil {
		return names
	}

	matched := make([]bool, len(names))
	forEach(len(names), workers, func(i int) {
		matched[i] = re.MatchString(names[i])
	})

	out := make([]string, 0, len(names))
	for i, name := range names {
		if matched[i] {
			out = append(out, name)
		}
	}
	return out
}
