package drive

import (
	"regexp"
	"strings"
)

// maxFilenameLen caps sanitized filenames.
const maxFilenameLen = 120

var (
	illegalChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	runRuns      = regexp.MustCompile(`[\s-]+`)
)

// SanitizeName converts a project name into a safe remote filename: illegal
// filesystem characters become dashes, whitespace/dash runs collapse to a
// single dash, the result is trimmed and length-capped.
func SanitizeName(name string) string {
	s := illegalChars.ReplaceAllString(name, "-")
	s = runRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	runes := []rune(s)
	if len(runes) > maxFilenameLen {
		s = string(runes[:maxFilenameLen])
		s = strings.TrimRight(s, "-")
	}
	return s
}
