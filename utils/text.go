package utils

import (
	"regexp"
	"strings"
)

// Truncate clips s to max characters, appending "..." when anything was cut.
// Operates on runes so multi-byte text is never split mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// WrapText splits s into lines of at most width characters, breaking on word
// boundaries. A single word longer than width gets its own line, unbroken.
func WrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	lines = append(lines, line)
	return lines
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFileName replaces every character outside [a-zA-Z0-9] with an
// underscore, yielding a safe download filename
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}
