// Package llmjson extracts JSON payloads from language-model replies,
// which routinely arrive wrapped in markdown code fences or surrounded
// by prose.
package llmjson

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// StripFences removes a markdown code fence around the payload, if
// present, and returns the inner content.
func StripFences(s string) string {
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// Extract returns the first JSON object or array embedded in s. When
// both appear, whichever opens first wins. Returns s unchanged when no
// JSON delimiter is found, leaving the error to the decoder.
func Extract(s string) string {
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	switch {
	case objStart == -1 && arrStart == -1:
		return s
	case arrStart == -1 || (objStart != -1 && objStart < arrStart):
		if end := strings.LastIndex(s, "}"); end > objStart {
			return s[objStart : end+1]
		}
	default:
		if end := strings.LastIndex(s, "]"); end > arrStart {
			return s[arrStart : end+1]
		}
	}
	return s
}

// Clean runs the full fence-strip + extract chain.
func Clean(s string) string {
	return Extract(StripFences(s))
}

// Truncate shortens s for inclusion in error messages.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
