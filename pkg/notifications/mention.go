package notifications

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// mentionRegex matches @username tokens at the start of the text or after
// whitespace, so email addresses are not picked up as mentions.
var mentionRegex = regexp.MustCompile(`(?:^|\s)@([a-zA-Z0-9][a-zA-Z0-9_\-.]*)`)

// ExtractMentions returns the unique usernames mentioned in free-text
// content, in order of first appearance.
func ExtractMentions(content string) []string {
	matches := mentionRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		username := m[1]
		if _, ok := seen[username]; ok {
			continue
		}
		seen[username] = struct{}{}
		usernames = append(usernames, username)
	}
	return usernames
}

// previewLength is the maximum rune length of a content preview used in
// notification text and email bodies.
const previewLength = 100

// Preview returns a truncated, single-line preview of content suitable for
// template interpolation.
func Preview(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}

	runes := []rune(content)
	return strings.TrimRight(string(runes[:previewLength]), " ") + "..."
}
