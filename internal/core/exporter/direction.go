package exporter

import (
	"strings"
	"unicode"
)

// containsRTL reports whether s carries any Arabic-script character. Persian
// shares the block, so this covers both target scripts the product renders
// right-to-left.
func containsRTL(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// splitLines breaks content on line breaks, tolerating Windows endings.
// Direction is decided per line; a document can mix both.
func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
