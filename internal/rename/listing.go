package rename

import "strings"

// FormatListing renders names as the editable listing, one per line.
func FormatListing(names []string) string {
	return strings.Join(names, "\n")
}

// ParseListing splits edited listing content into lines. A single trailing
// newline is tolerated, as editors usually add one, and "\r\n" line endings
// are accepted. Empty content yields no lines.
func ParseListing(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
