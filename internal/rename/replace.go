package rename

import "regexp"

// ReplaceAll substitutes replacement for every match of re in each name.
// Group references such as $1 or ${name} in replacement are expanded.
// The result is aligned with names: targets[i] is the new name for names[i].
func ReplaceAll(names []string, re *regexp.Regexp, replacement string, workers int) []string {
	targets := make([]string, len(names))
	forEach(len(names), workers, func(i int) {
		targets[i] = re.ReplaceAllString(names[i], replacement)
	})
	return targets
}
