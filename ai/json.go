package ai

import (
	"regexp"
	"strings"
)

var (
	fencePattern  = regexp.MustCompile("```json|```")
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSONObject strips markdown fences from model output and returns the outermost {...}
// block, or "" when there is none.
func ExtractJSONObject(content string) string {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(content, ""))
	return objectPattern.FindString(cleaned)
}
