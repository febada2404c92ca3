package services

import "strings"

// extractJSONObject returns the substring between the first '{' and the last
// '}' of a model reply, after stripping markdown fences. The upstream model
// enforces no schema, so prose around the JSON is expected.
func extractJSONObject(text string) (string, bool) {
	text = stripFences(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// extractJSONArray is the array counterpart: first '[' to last ']'.
func extractJSONArray(text string) (string, bool) {
	text = stripFences(text)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}
