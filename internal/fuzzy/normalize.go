package fuzzy

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[\s_\-.]+`)

// Normalize folds a type or field name for comparison: separators removed,
// lower case. "Chat_Member" and "chatmember" normalize the same.
func Normalize(name string) string {
	return strings.ToLower(separators.ReplaceAllString(name, ""))
}
