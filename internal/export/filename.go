package export

import (
	"regexp"
	"strings"
)

// FileSuffix identifies the artifact and its producing platform.
const FileSuffix = " - CV Builder.pdf"

var disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)

// FileName derives the download filename from a user's display name: strip
// characters outside alphanumeric/space/hyphen/underscore, collapse internal
// whitespace, trim, and append the fixed suffix.
func FileName(displayName string) string {
	name := disallowedChars.ReplaceAllString(displayName, "")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = "CV"
	}
	return name + FileSuffix
}
